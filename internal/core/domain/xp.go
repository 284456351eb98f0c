package domain

import (
	"fmt"
	"slices"
	"strings"
)

// XP is a single logged experience. CreatedAt is written once, in
// TimestampLayout, when the entry is created.
type XP struct {
	ID          string   `json:"id" bson:"_id"`
	Title       string   `json:"title" bson:"title"`
	Description *string  `json:"description,omitempty" bson:"description,omitempty"`
	Tags        []string `json:"tags" bson:"tags"`
	Duration    *int     `json:"duration,omitempty" bson:"duration,omitempty"`
	CreatedAt   string   `json:"createdAt" bson:"createdAt"`
	OwnerID     string   `json:"ownerId" bson:"ownerId"`
}

func (x XP) GetID() string { return x.ID }

func (x XP) WithID(id string) XP {
	x.ID = id
	return x
}

// HasAnyTag reports whether the entry carries at least one of titles.
// Matching is exact and case-sensitive.
func (x XP) HasAnyTag(titles []string) bool {
	for _, t := range titles {
		if slices.Contains(x.Tags, t) {
			return true
		}
	}
	return false
}

// XPPatch carries the editable fields of an entry. ID and CreatedAt are not
// editable.
type XPPatch struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Tags        *[]string `json:"tags,omitempty"`
	Duration    *int      `json:"duration,omitempty"`
}

// Apply merges p over current.
func (p XPPatch) Apply(current XP) XP {
	if p.Title != nil {
		current.Title = *p.Title
	}
	if p.Description != nil {
		current.Description = p.Description
	}
	if p.Tags != nil {
		current.Tags = slices.Clone(*p.Tags)
	}
	if p.Duration != nil {
		current.Duration = p.Duration
	}
	return current
}

// ValidateDuration rejects negative minute counts.
func ValidateDuration(minutes *int) error {
	if minutes != nil && *minutes < 0 {
		return fmt.Errorf("%w: duration must be a non-negative number of minutes", ErrInvalidInput)
	}
	return nil
}

// FilterByTitle keeps entries whose title contains query, ignoring case. A
// blank query keeps everything.
func FilterByTitle(items []XP, query string) []XP {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return items
	}
	out := make([]XP, 0, len(items))
	for _, x := range items {
		if strings.Contains(strings.ToLower(x.Title), q) {
			out = append(out, x)
		}
	}
	return out
}
