package handler

import "github.com/xplog/xp-tracker/internal/core/domain"

func toCategoryResponse(c domain.Category) categoryResponse {
	return categoryResponse{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		Color:       c.Color,
		OwnerID:     c.OwnerID,
	}
}

func toCategoryResponses(items []domain.Category) []categoryResponse {
	out := make([]categoryResponse, 0, len(items))
	for _, c := range items {
		out = append(out, toCategoryResponse(c))
	}
	return out
}

func toXPResponse(x domain.XP) xpResponse {
	tags := x.Tags
	if tags == nil {
		tags = []string{}
	}
	return xpResponse{
		ID:          x.ID,
		Title:       x.Title,
		Description: x.Description,
		Tags:        tags,
		Duration:    x.Duration,
		CreatedAt:   x.CreatedAt,
		OwnerID:     x.OwnerID,
	}
}

func toXPResponses(items []domain.XP) []xpResponse {
	out := make([]xpResponse, 0, len(items))
	for _, x := range items {
		out = append(out, toXPResponse(x))
	}
	return out
}

func toUserResponse(u domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
	}
}

func (r editCategoryRequest) toPatch() domain.CategoryPatch {
	return domain.CategoryPatch{
		Title:       r.Title,
		Description: r.Description,
		Color:       r.Color,
	}
}

func (r editXPRequest) toPatch() domain.XPPatch {
	return domain.XPPatch{
		Title:       r.Title,
		Description: r.Description,
		Tags:        r.Tags,
		Duration:    r.Duration,
	}
}
