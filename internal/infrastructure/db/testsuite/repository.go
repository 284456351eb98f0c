// Package testsuite holds behaviour tests shared by every repository backend.
package testsuite

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/xplog/xp-tracker/internal/core/domain"
	"github.com/xplog/xp-tracker/internal/core/ports"
	"github.com/xplog/xp-tracker/internal/core/service"
)

// Factory returns an empty repository.
type Factory func(t *testing.T) ports.Repository[domain.XP]

func sampleXP(title string) domain.XP {
	description := "notes"
	duration := 45
	return domain.XP{
		Title:       title,
		Description: &description,
		Tags:        []string{"go", "testing"},
		Duration:    &duration,
		CreatedAt:   "2024-05-10T09:15:30.123Z",
		OwnerID:     "u1",
	}
}

// TestRepository checks the repository contract against a backend.
func TestRepository(t *testing.T, newRepo Factory) {
	t.Run("CreateThenGet", func(t *testing.T) {
		ctx := context.Background()
		repo := newRepo(t)

		created, err := repo.Create(ctx, sampleXP("first"))
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if created.ID == "" {
			t.Fatalf("expected a generated id")
		}

		got, ok, err := repo.GetByID(ctx, created.ID)
		if err != nil || !ok {
			t.Fatalf("get: ok=%v err=%v", ok, err)
		}
		if !reflect.DeepEqual(got, created) {
			t.Fatalf("round trip mismatch:\n got  %+v\n want %+v", got, created)
		}
	})

	t.Run("CreateIgnoresGivenID", func(t *testing.T) {
		ctx := context.Background()
		repo := newRepo(t)

		item := sampleXP("x")
		item.ID = "caller-id"
		created, err := repo.Create(ctx, item)
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if created.ID == "caller-id" {
			t.Fatalf("create must assign a fresh id")
		}
	})

	t.Run("OptionalFieldsStayAbsent", func(t *testing.T) {
		ctx := context.Background()
		repo := newRepo(t)

		item := sampleXP("bare")
		item.Description, item.Duration = nil, nil
		created, err := repo.Create(ctx, item)
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		got, _, err := repo.GetByID(ctx, created.ID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.Description != nil || got.Duration != nil {
			t.Fatalf("absent fields came back set: %+v", got)
		}
	})

	t.Run("GetMissing", func(t *testing.T) {
		_, ok, err := newRepo(t).GetByID(context.Background(), "does-not-exist")
		if err != nil || ok {
			t.Fatalf("expected absent without error, got ok=%v err=%v", ok, err)
		}
	})

	t.Run("DeleteIsIdempotent", func(t *testing.T) {
		ctx := context.Background()
		repo := newRepo(t)

		created, err := repo.Create(ctx, sampleXP("doomed"))
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		for i := 0; i < 2; i++ {
			if err := repo.Delete(ctx, created.ID); err != nil {
				t.Fatalf("delete #%d: %v", i+1, err)
			}
		}
		if _, ok, _ := repo.GetByID(ctx, created.ID); ok {
			t.Fatalf("record still present after delete")
		}
	})

	t.Run("CreateWithIDConflict", func(t *testing.T) {
		ctx := context.Background()
		repo := newRepo(t)

		original := sampleXP("original").WithID("fixed")
		if _, err := repo.CreateWithID(ctx, original); err != nil {
			t.Fatalf("first create: %v", err)
		}
		_, err := repo.CreateWithID(ctx, sampleXP("intruder").WithID("fixed"))
		if !errors.Is(err, domain.ErrConflict) {
			t.Fatalf("expected ErrConflict, got %v", err)
		}

		got, _, _ := repo.GetByID(ctx, "fixed")
		if !reflect.DeepEqual(got, original) {
			t.Fatalf("existing record modified: %+v", got)
		}
	})

	t.Run("UpdateMissing", func(t *testing.T) {
		ctx := context.Background()
		repo := newRepo(t)

		if _, err := repo.Create(ctx, sampleXP("keep")); err != nil {
			t.Fatalf("create: %v", err)
		}
		title := "changed"
		_, err := repo.Update(ctx, "missing-id", domain.XPPatch{Title: &title})
		if !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}

		all, _ := repo.GetAll(ctx)
		if len(all) != 1 || all[0].Title != "keep" {
			t.Fatalf("store changed: %+v", all)
		}
	})

	t.Run("UpdateKeepsIdentity", func(t *testing.T) {
		ctx := context.Background()
		repo := newRepo(t)

		created, err := repo.Create(ctx, sampleXP("before"))
		if err != nil {
			t.Fatalf("create: %v", err)
		}

		hostile := ports.PatchFunc[domain.XP](func(x domain.XP) domain.XP {
			x.ID = "hijacked"
			x.Title = "after"
			return x
		})
		updated, err := repo.Update(ctx, created.ID, hostile)
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if updated.ID != created.ID || updated.Title != "after" || updated.CreatedAt != created.CreatedAt {
			t.Fatalf("unexpected update result: %+v", updated)
		}
		if _, ok, _ := repo.GetByID(ctx, "hijacked"); ok {
			t.Fatalf("patch id must be ignored")
		}
		got, _, _ := repo.GetByID(ctx, created.ID)
		if !reflect.DeepEqual(got, updated) {
			t.Fatalf("stored record differs from update result: %+v", got)
		}
	})

	t.Run("FindBy", func(t *testing.T) {
		ctx := context.Background()
		repo := newRepo(t)

		for _, owner := range []string{"u1", "u2", "u1"} {
			x := sampleXP("owned")
			x.OwnerID = owner
			if _, err := repo.Create(ctx, x); err != nil {
				t.Fatalf("create: %v", err)
			}
		}

		got, err := repo.FindBy(ctx, func(x domain.XP) bool { return x.OwnerID == "u1" })
		if err != nil {
			t.Fatalf("find: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("expected 2 matches, got %d", len(got))
		}
		all, err := repo.GetAll(ctx)
		if err != nil || len(all) != 3 {
			t.Fatalf("expected 3 records, got %d (%v)", len(all), err)
		}
	})
}

// TestXPQuery checks that a push-down querier returns exactly what the
// in-memory filter returns over the same records.
func TestXPQuery(t *testing.T, repo ports.Repository[domain.XP], querier ports.XPQuerier) {
	ctx := context.Background()

	records := []domain.XP{
		{ID: "a", OwnerID: "u1", Tags: []string{"react"}, CreatedAt: "2024-05-10T00:00:00.000Z"},
		{ID: "b", OwnerID: "u1", Tags: []string{"python"}, CreatedAt: "2024-05-09T23:59:59.999Z"},
		{ID: "c", OwnerID: "u2", Tags: []string{"react"}, CreatedAt: "2024-05-10T10:00:00.000Z"},
		{ID: "d", OwnerID: "u1", Tags: []string{"react", "hooks"}, CreatedAt: "2024-05-10T23:59:59.999Z"},
		{ID: "e", OwnerID: "u1", Tags: []string{}, CreatedAt: "2024-05-11T00:00:00.000Z"},
		{ID: "f", OwnerID: "u1", Tags: []string{"react"}, CreatedAt: "2024-05-10T12:00:00.000Z"},
		{ID: "g", OwnerID: "u1", Tags: []string{"css"}, CreatedAt: "2024-05-10T12:00:00.000Z"},
	}
	for _, r := range records {
		if _, err := repo.CreateWithID(ctx, r); err != nil {
			t.Fatalf("seed %s: %v", r.ID, err)
		}
	}

	day := func(h, m, s, ms int) *time.Time {
		v := time.Date(2024, 5, 10, h, m, s, ms*int(time.Millisecond), time.UTC)
		return &v
	}
	nanos := time.Date(2024, 5, 10, 23, 59, 59, 999_999_999, time.UTC)
	offset := time.Date(2024, 5, 10, 2, 0, 0, 0, time.FixedZone("CEST", 2*3600))

	filters := map[string]ports.XPFilter{
		"owner only":          {},
		"day":                 {StartDate: day(0, 0, 0, 0), EndDate: day(23, 59, 59, 999)},
		"single bound":        {StartDate: day(12, 0, 0, 0)},
		"tags":                {CategoryTitles: []string{"react", "css"}},
		"day and tag":         {StartDate: day(0, 0, 0, 0), EndDate: day(12, 0, 0, 0), CategoryTitles: []string{"react"}},
		"sub-millisecond end": {StartDate: day(12, 0, 0, 0), EndDate: &nanos},
		"non-UTC start":       {StartDate: &offset, EndDate: day(0, 0, 0, 0)},
		"no tag matches":      {CategoryTitles: []string{"React"}},
	}

	all, err := repo.GetAll(ctx)
	if err != nil {
		t.Fatalf("get all: %v", err)
	}

	for name, f := range filters {
		t.Run(name, func(t *testing.T) {
			f = service.NormalizeXPFilter(f)
			want := service.FilterXP(all, "u1", f)

			got, err := querier.FindXPByQuery(ctx, "u1", f)
			if err != nil {
				t.Fatalf("query: %v", err)
			}
			if len(got) != len(want) {
				t.Fatalf("expected %v, got %v", idsOf(want), idsOf(got))
			}
			for i := range want {
				if got[i].ID != want[i].ID {
					t.Fatalf("expected %v, got %v", idsOf(want), idsOf(got))
				}
			}
		})
	}
}

func idsOf(items []domain.XP) []string {
	out := make([]string, len(items))
	for i, x := range items {
		out[i] = x.ID
	}
	return out
}
