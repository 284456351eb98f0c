package domain

// Category is a user-defined label. XP entries reference it by Title, not by ID.
type Category struct {
	ID          string  `json:"id" bson:"_id"`
	Title       string  `json:"title" bson:"title"`
	Description *string `json:"description,omitempty" bson:"description,omitempty"`
	Color       *string `json:"color,omitempty" bson:"color,omitempty"`
	OwnerID     string  `json:"ownerId" bson:"ownerId"`
}

func (c Category) GetID() string { return c.ID }

func (c Category) WithID(id string) Category {
	c.ID = id
	return c
}

// CategoryPatch carries the fields of an edit. Nil fields are left untouched.
type CategoryPatch struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Color       *string `json:"color,omitempty"`
	OwnerID     *string `json:"ownerId,omitempty"`
}

// Apply merges p over current.
func (p CategoryPatch) Apply(current Category) Category {
	if p.Title != nil {
		current.Title = *p.Title
	}
	if p.Description != nil {
		current.Description = p.Description
	}
	if p.Color != nil {
		current.Color = p.Color
	}
	if p.OwnerID != nil {
		current.OwnerID = *p.OwnerID
	}
	return current
}
