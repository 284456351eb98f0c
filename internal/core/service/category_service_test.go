package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/xplog/xp-tracker/internal/core/domain"
	"github.com/xplog/xp-tracker/internal/core/ports"
)

func TestCategoryService_Seed_FreshStore(t *testing.T) {
	repo := &stubRepo[domain.Category]{}
	svc := NewCategoryService(repo, "", zerolog.Nop())

	n, err := svc.Seed(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 10 || len(repo.items) != 10 {
		t.Fatalf("expected 10 defaults, got n=%d stored=%d", n, len(repo.items))
	}
	for i, c := range repo.items {
		if c.OwnerID != DefaultSeedOwnerID {
			t.Fatalf("category %d owned by %q", i, c.OwnerID)
		}
		if c.Color == nil || c.Description == nil {
			t.Fatalf("category %s missing color or description", c.ID)
		}
	}
	if repo.items[0].ID != "1" || repo.items[0].Title != "react" || repo.items[9].ID != "10" || repo.items[9].Title != "git" {
		t.Fatalf("unexpected defaults: %+v %+v", repo.items[0], repo.items[9])
	}
}

func TestCategoryService_Seed_Idempotent(t *testing.T) {
	repo := &stubRepo[domain.Category]{}
	svc := NewCategoryService(repo, "owner-x", zerolog.Nop())

	if _, err := svc.Seed(context.Background()); err != nil {
		t.Fatalf("first seed: %v", err)
	}
	n, err := svc.Seed(context.Background())
	if err != nil {
		t.Fatalf("second seed: %v", err)
	}
	if n != 0 || len(repo.items) != 10 {
		t.Fatalf("reseed changed the store: n=%d stored=%d", n, len(repo.items))
	}
	seen := map[string]bool{}
	for _, c := range repo.items {
		if seen[c.ID] {
			t.Fatalf("duplicate id %s", c.ID)
		}
		seen[c.ID] = true
	}
}

// conflictingRepo reports an empty store but rejects some ids, as when
// another seeder wins the race.
type conflictingRepo struct {
	stubRepo[domain.Category]
	taken map[string]bool
}

func (r *conflictingRepo) GetAll(ctx context.Context) ([]domain.Category, error) {
	return nil, nil
}

func (r *conflictingRepo) CreateWithID(ctx context.Context, c domain.Category) (domain.Category, error) {
	if r.taken[c.ID] {
		return domain.Category{}, domain.ErrConflict
	}
	return r.stubRepo.CreateWithID(ctx, c)
}

func TestCategoryService_Seed_ConflictsCountAsPresent(t *testing.T) {
	repo := &conflictingRepo{taken: map[string]bool{"1": true, "2": true}}
	svc := NewCategoryService(repo, "", zerolog.Nop())

	n, err := svc.Seed(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 8 {
		t.Fatalf("expected 8 inserted, got %d", n)
	}
}

func TestCategoryService_Seed_Unavailable(t *testing.T) {
	svc := NewCategoryService(&stubRepo[domain.Category]{err: domain.ErrUnavailable}, "", zerolog.Nop())

	if _, err := svc.Seed(context.Background()); !errors.Is(err, domain.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestCategoryService_ListDoesNotSeed(t *testing.T) {
	repo := &stubRepo[domain.Category]{}
	svc := NewCategoryService(repo, "", zerolog.Nop())

	if got := svc.GetCategoriesByOwnerID(context.Background(), DefaultSeedOwnerID); len(got) != 0 {
		t.Fatalf("expected empty list, got %v", got)
	}
	if len(repo.items) != 0 {
		t.Fatalf("listing wrote to the store")
	}
}

func TestCategoryService_OwnerScopedList(t *testing.T) {
	repo := &stubRepo[domain.Category]{items: []domain.Category{
		{ID: "1", Title: "react", OwnerID: "u1"},
		{ID: "2", Title: "go", OwnerID: "u2"},
	}}
	svc := NewCategoryService(repo, "", zerolog.Nop())

	got := svc.GetCategoriesByOwnerID(context.Background(), "u2")
	if len(got) != 1 || got[0].ID != "2" {
		t.Fatalf("unexpected categories: %+v", got)
	}
}

func TestCategoryService_RenameKeepsXPTags(t *testing.T) {
	categories := &stubRepo[domain.Category]{items: []domain.Category{{ID: "1", Title: "react", OwnerID: "u1"}}}
	xps := &stubRepo[domain.XP]{items: []domain.XP{{ID: "x1", Tags: []string{"react"}, OwnerID: "u1", CreatedAt: "2024-01-01T00:00:00.000Z"}}}
	catSvc := NewCategoryService(categories, "", zerolog.Nop())
	xpSvc := NewXPService(xps, nil, zerolog.Nop())

	if _, err := catSvc.EditCategory(context.Background(), "1", domain.CategoryPatch{Title: ptr("react-js")}); err != nil {
		t.Fatalf("edit: %v", err)
	}

	if got := xpSvc.GetXPByOwnerIDWithFilters(context.Background(), "u1", ports.XPFilter{CategoryTitles: []string{"react"}}); len(got) != 1 {
		t.Fatalf("entry must still match the old title, got %v", got)
	}
	if got := xpSvc.GetXPByOwnerIDWithFilters(context.Background(), "u1", ports.XPFilter{CategoryTitles: []string{"react-js"}}); len(got) != 0 {
		t.Fatalf("entry must not match the new title, got %v", got)
	}
}

func TestCategoryService_Mutations(t *testing.T) {
	repo := &stubRepo[domain.Category]{}
	svc := NewCategoryService(repo, "", zerolog.Nop())
	ctx := context.Background()

	created, err := svc.AddCategory(ctx, domain.Category{ID: "ignored?", Title: "go", OwnerID: "u1"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if created.ID == "ignored?" {
		t.Fatalf("create must assign a fresh id")
	}

	if _, err := svc.EditCategory(ctx, "nope", domain.CategoryPatch{Title: ptr("x")}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := svc.RemoveCategory(ctx, created.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if svc.GetCategoryByID(ctx, created.ID) != nil {
		t.Fatalf("category still present")
	}
}

func TestCategoryService_ReadsDegradeOnFailure(t *testing.T) {
	svc := NewCategoryService(&stubRepo[domain.Category]{err: errors.New("boom")}, "", zerolog.Nop())

	if got := svc.GetCategoriesByOwnerID(context.Background(), "u1"); got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", got)
	}
	if svc.GetCategoryByID(context.Background(), "1") != nil {
		t.Fatalf("expected nil")
	}
}
