// Package localstore persists every entity type as a single JSON array under a
// fixed key of a BlobStore. Each operation loads the whole array, mutates it
// and writes it back.
package localstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/xplog/xp-tracker/internal/core/domain"
	"github.com/xplog/xp-tracker/internal/core/ports"
)

// Storage keys, one per entity type.
const (
	KeyCategories = "categories"
	KeyUsers      = "users"
	KeyXPs        = "xps"
)

// Repository implements ports.Repository on top of a BlobStore. A nil store
// makes the repository unavailable: writes fail with domain.ErrUnavailable and
// reads return nothing.
//
// mu serialises read-modify-write cycles of this instance only. Two instances
// or two processes sharing a blob can still lose each other's updates.
type Repository[T ports.Record[T]] struct {
	store BlobStore
	key   string
	mu    sync.Mutex
}

var (
	_ ports.Repository[domain.XP]       = (*Repository[domain.XP])(nil)
	_ ports.Repository[domain.Category] = (*Repository[domain.Category])(nil)
	_ ports.Repository[domain.User]     = (*Repository[domain.User])(nil)
)

func NewRepository[T ports.Record[T]](store BlobStore, key string) *Repository[T] {
	return &Repository[T]{store: store, key: key}
}

func (r *Repository[T]) available() bool {
	return r.store != nil
}

func (r *Repository[T]) loadAll(ctx context.Context) ([]T, error) {
	if !r.available() {
		return []T{}, nil
	}
	data, ok, err := r.store.Load(ctx, r.key)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", r.key, err)
	}
	if !ok || len(data) == 0 {
		return []T{}, nil
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", r.key, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (r *Repository[T]) saveAll(ctx context.Context, items []T) error {
	if !r.available() {
		return fmt.Errorf("save %s: %w", r.key, domain.ErrUnavailable)
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", r.key, err)
	}
	if err := r.store.Save(ctx, r.key, data); err != nil {
		return fmt.Errorf("save %s: %w", r.key, err)
	}
	return nil
}

func (r *Repository[T]) GetAll(ctx context.Context) ([]T, error) {
	return r.loadAll(ctx)
}

func (r *Repository[T]) GetByID(ctx context.Context, id string) (T, bool, error) {
	var zero T
	items, err := r.loadAll(ctx)
	if err != nil {
		return zero, false, err
	}
	for _, item := range items {
		if item.GetID() == id {
			return item, true, nil
		}
	}
	return zero, false, nil
}

func (r *Repository[T]) Create(ctx context.Context, item T) (T, error) {
	return r.insert(ctx, item.WithID(uuid.NewString()))
}

func (r *Repository[T]) CreateWithID(ctx context.Context, item T) (T, error) {
	return r.insert(ctx, item)
}

func (r *Repository[T]) insert(ctx context.Context, item T) (T, error) {
	var zero T
	if !r.available() {
		return zero, fmt.Errorf("insert into %s: %w", r.key, domain.ErrUnavailable)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	items, err := r.loadAll(ctx)
	if err != nil {
		return zero, err
	}
	for _, existing := range items {
		if existing.GetID() == item.GetID() {
			return zero, fmt.Errorf("%s %s: %w", r.key, item.GetID(), domain.ErrConflict)
		}
	}
	if err := r.saveAll(ctx, append(items, item)); err != nil {
		return zero, err
	}
	return item, nil
}

func (r *Repository[T]) Update(ctx context.Context, id string, patch ports.Patch[T]) (T, error) {
	var zero T
	if !r.available() {
		return zero, fmt.Errorf("update %s: %w", r.key, domain.ErrUnavailable)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	items, err := r.loadAll(ctx)
	if err != nil {
		return zero, err
	}
	for i, existing := range items {
		if existing.GetID() != id {
			continue
		}
		merged := patch.Apply(existing).WithID(existing.GetID())
		items[i] = merged
		if err := r.saveAll(ctx, items); err != nil {
			return zero, err
		}
		return merged, nil
	}
	return zero, fmt.Errorf("%s %s: %w", r.key, id, domain.ErrNotFound)
}

func (r *Repository[T]) Delete(ctx context.Context, id string) error {
	if !r.available() {
		return fmt.Errorf("delete from %s: %w", r.key, domain.ErrUnavailable)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	items, err := r.loadAll(ctx)
	if err != nil {
		return err
	}
	kept := items[:0]
	for _, item := range items {
		if item.GetID() != id {
			kept = append(kept, item)
		}
	}
	return r.saveAll(ctx, kept)
}

func (r *Repository[T]) FindBy(ctx context.Context, predicate func(T) bool) ([]T, error) {
	items, err := r.loadAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		if predicate(item) {
			out = append(out, item)
		}
	}
	return out, nil
}
