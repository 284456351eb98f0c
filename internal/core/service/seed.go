package service

import "github.com/xplog/xp-tracker/internal/core/domain"

// DefaultSeedOwnerID owns the default categories unless configured otherwise.
const DefaultSeedOwnerID = "user-1"

type defaultCategory struct {
	id, title, description, color string
}

var defaultCategories = []defaultCategory{
	{"1", "react", "React framework", "#61dafb"},
	{"2", "javascript", "JavaScript language", "#f7df1e"},
	{"3", "typescript", "TypeScript language", "#3178c6"},
	{"4", "nextjs", "Next.js framework", "#000000"},
	{"5", "hooks", "React hooks", "#764abc"},
	{"6", "css", "CSS styling", "#1572b6"},
	{"7", "html", "HTML markup", "#e34f26"},
	{"8", "nodejs", "Node.js runtime", "#339933"},
	{"9", "python", "Python language", "#3776ab"},
	{"10", "git", "Git version control", "#f05032"},
}

// DefaultCategories returns the seed set with stable ids, owned by ownerID.
func DefaultCategories(ownerID string) []domain.Category {
	out := make([]domain.Category, len(defaultCategories))
	for i, d := range defaultCategories {
		description, color := d.description, d.color
		out[i] = domain.Category{
			ID:          d.id,
			Title:       d.title,
			Description: &description,
			Color:       &color,
			OwnerID:     ownerID,
		}
	}
	return out
}
