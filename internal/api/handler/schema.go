package handler

// errorResponse is the error envelope returned on 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Categories ---

type createCategoryRequest struct {
	Title       string  `json:"title"       validate:"required"`
	Description *string `json:"description"`
	Color       *string `json:"color"       validate:"omitempty,hexcolor"`
}

type editCategoryRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Color       *string `json:"color" validate:"omitempty,hexcolor"`
}

type categoryResponse struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	Color       *string `json:"color,omitempty"`
	OwnerID     string  `json:"ownerId"`
}

// --- XP ---

type createXPRequest struct {
	Title       string   `json:"title"       validate:"required"`
	Description *string  `json:"description"`
	Tags        []string `json:"tags"`
	Duration    *int     `json:"duration"    validate:"omitempty,min=0,quarterhour"`
}

type editXPRequest struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Tags        *[]string `json:"tags"`
	Duration    *int      `json:"duration" validate:"omitempty,min=0,quarterhour"`
}

type xpResponse struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description *string  `json:"description,omitempty"`
	Tags        []string `json:"tags"`
	Duration    *int     `json:"duration,omitempty"`
	CreatedAt   string   `json:"createdAt"`
	OwnerID     string   `json:"ownerId"`
}

// --- Users ---

type userRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name"`
}

type userResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	CreatedAt string `json:"createdAt"`
}

type signinResponse struct {
	User      userResponse `json:"user"`
	Token     string       `json:"token,omitempty"`
	ExpiresAt string       `json:"expiresAt,omitempty"`
}
