package instrumented

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/xplog/xp-tracker/internal/api/metrics"
	"github.com/xplog/xp-tracker/internal/core/domain"
	"github.com/xplog/xp-tracker/internal/infrastructure/db/localstore"
)

func counter(entity, backend, op, result string) float64 {
	return testutil.ToFloat64(metrics.StorageOperationsTotal.WithLabelValues(entity, backend, op, result))
}

func TestRepository_CountsResults(t *testing.T) {
	ctx := context.Background()
	repo := Wrap[domain.Category](localstore.NewRepository[domain.Category](localstore.NewMemoryBlobStore(), localstore.KeyCategories), "categories", "test-counts")

	okBefore := counter("categories", "test-counts", "create_with_id", "ok")
	conflictBefore := counter("categories", "test-counts", "create_with_id", "conflict")

	if _, err := repo.CreateWithID(ctx, domain.Category{ID: "1", Title: "react"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := repo.CreateWithID(ctx, domain.Category{ID: "1", Title: "react"}); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected conflict to pass through, got %v", err)
	}

	if got := counter("categories", "test-counts", "create_with_id", "ok") - okBefore; got != 1 {
		t.Fatalf("expected 1 ok, got %v", got)
	}
	if got := counter("categories", "test-counts", "create_with_id", "conflict") - conflictBefore; got != 1 {
		t.Fatalf("expected 1 conflict, got %v", got)
	}
}

func TestRepository_PassesThrough(t *testing.T) {
	ctx := context.Background()
	inner := localstore.NewRepository[domain.XP](localstore.NewMemoryBlobStore(), localstore.KeyXPs)
	repo := Wrap[domain.XP](inner, "xps", "test-pass")

	created, err := repo.Create(ctx, domain.XP{Title: "t", Tags: []string{}, OwnerID: "u1"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	got, ok, err := repo.GetByID(ctx, created.ID)
	if err != nil || !ok || got.Title != "t" {
		t.Fatalf("unexpected get: %+v %v %v", got, ok, err)
	}
	if _, ok, _ := repo.GetByID(ctx, "missing"); ok {
		t.Fatalf("expected absent")
	}
	if counter("xps", "test-pass", "get_by_id", "not_found") != 1 {
		t.Fatalf("absent lookup must be counted as not_found")
	}

	unavailable := Wrap[domain.XP](localstore.NewRepository[domain.XP](nil, localstore.KeyXPs), "xps", "test-pass")
	if err := unavailable.Delete(ctx, "x"); !errors.Is(err, domain.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	if counter("xps", "test-pass", "delete", "unavailable") != 1 {
		t.Fatalf("unavailable delete not counted")
	}
}

func TestResult(t *testing.T) {
	cases := map[error]string{
		nil:                   "ok",
		domain.ErrNotFound:    "not_found",
		domain.ErrConflict:    "conflict",
		domain.ErrUserExists:  "conflict",
		domain.ErrUnavailable: "unavailable",
		errors.New("boom"):    "error",
	}
	for err, want := range cases {
		if got := result(err); got != want {
			t.Fatalf("result(%v) = %q, want %q", err, got, want)
		}
	}
}
