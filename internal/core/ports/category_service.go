package ports

import (
	"context"

	"github.com/xplog/xp-tracker/internal/core/domain"
)

// CategoryService is the use-case surface for categories.
type CategoryService interface {
	GetCategoriesByOwnerID(ctx context.Context, ownerID string) []domain.Category
	GetCategoryByID(ctx context.Context, id string) *domain.Category
	AddCategory(ctx context.Context, c domain.Category) (domain.Category, error)
	EditCategory(ctx context.Context, id string, patch domain.CategoryPatch) (domain.Category, error)
	RemoveCategory(ctx context.Context, id string) error
	// Seed inserts the default categories into an empty store and returns how
	// many were written.
	Seed(ctx context.Context) (int, error)
}
