package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/xplog/xp-tracker/internal/core/domain"
	"github.com/xplog/xp-tracker/internal/core/ports"
)

type CategoryService struct {
	repo        ports.Repository[domain.Category]
	seedOwnerID string
	logger      zerolog.Logger
}

func NewCategoryService(repo ports.Repository[domain.Category], seedOwnerID string, logger zerolog.Logger) *CategoryService {
	if seedOwnerID == "" {
		seedOwnerID = DefaultSeedOwnerID
	}
	return &CategoryService{repo: repo, seedOwnerID: seedOwnerID, logger: logger}
}

// GetCategoriesByOwnerID never seeds; see Seed.
func (s *CategoryService) GetCategoriesByOwnerID(ctx context.Context, ownerID string) []domain.Category {
	items, err := s.repo.FindBy(ctx, func(c domain.Category) bool { return c.OwnerID == ownerID })
	if err != nil {
		s.logger.Error().Err(err).Str("owner_id", ownerID).Msg("failed to list categories")
		return []domain.Category{}
	}
	if items == nil {
		items = []domain.Category{}
	}
	return items
}

func (s *CategoryService) GetCategoryByID(ctx context.Context, id string) *domain.Category {
	c, ok, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("category_id", id).Msg("failed to get category")
		return nil
	}
	if !ok {
		return nil
	}
	return &c
}

func (s *CategoryService) AddCategory(ctx context.Context, c domain.Category) (domain.Category, error) {
	created, err := s.repo.Create(ctx, c)
	if err != nil {
		s.logger.Error().Err(err).Str("owner_id", c.OwnerID).Msg("failed to create category")
		return domain.Category{}, fmt.Errorf("add category: %w", err)
	}
	return created, nil
}

// EditCategory updates the category only. XP entries tagged with the old
// title keep it.
func (s *CategoryService) EditCategory(ctx context.Context, id string, patch domain.CategoryPatch) (domain.Category, error) {
	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		s.logger.Error().Err(err).Str("category_id", id).Msg("failed to edit category")
		return domain.Category{}, fmt.Errorf("edit category: %w", err)
	}
	return updated, nil
}

func (s *CategoryService) RemoveCategory(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("category_id", id).Msg("failed to remove category")
		return fmt.Errorf("remove category: %w", err)
	}
	return nil
}

// Seed writes the default categories when the store holds no category at all.
// Ids are fixed, so a concurrent seeder that got there first shows up as a
// conflict and is counted as already present.
func (s *CategoryService) Seed(ctx context.Context) (int, error) {
	existing, err := s.repo.GetAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("seed categories: %w", err)
	}
	if len(existing) > 0 {
		s.logger.Debug().Int("existing", len(existing)).Msg("category store not empty, seeding skipped")
		return 0, nil
	}

	inserted := 0
	for _, c := range DefaultCategories(s.seedOwnerID) {
		if _, err := s.repo.CreateWithID(ctx, c); err != nil {
			if errors.Is(err, domain.ErrConflict) {
				continue
			}
			return inserted, fmt.Errorf("seed category %s: %w", c.ID, err)
		}
		inserted++
	}

	s.logger.Info().Int("inserted", inserted).Str("owner_id", s.seedOwnerID).Msg("default categories seeded")
	return inserted, nil
}
