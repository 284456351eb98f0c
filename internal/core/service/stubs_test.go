package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/xplog/xp-tracker/internal/core/domain"
	"github.com/xplog/xp-tracker/internal/core/ports"
)

// stubRepo is an in-memory ports.Repository. Setting err makes every call
// fail with it.
type stubRepo[T ports.Record[T]] struct {
	mu    sync.Mutex
	items []T
	next  int
	err   error
}

func (r *stubRepo[T]) GetAll(ctx context.Context) ([]T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	return append([]T(nil), r.items...), nil
}

func (r *stubRepo[T]) GetByID(ctx context.Context, id string) (T, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var zero T
	if r.err != nil {
		return zero, false, r.err
	}
	for _, it := range r.items {
		if it.GetID() == id {
			return it, true, nil
		}
	}
	return zero, false, nil
}

func (r *stubRepo[T]) Create(ctx context.Context, item T) (T, error) {
	r.mu.Lock()
	r.next++
	id := fmt.Sprintf("gen-%d", r.next)
	r.mu.Unlock()
	return r.CreateWithID(ctx, item.WithID(id))
}

func (r *stubRepo[T]) CreateWithID(ctx context.Context, item T) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var zero T
	if r.err != nil {
		return zero, r.err
	}
	for _, it := range r.items {
		if it.GetID() == item.GetID() {
			return zero, domain.ErrConflict
		}
	}
	r.items = append(r.items, item)
	return item, nil
}

func (r *stubRepo[T]) Update(ctx context.Context, id string, patch ports.Patch[T]) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var zero T
	if r.err != nil {
		return zero, r.err
	}
	for i, it := range r.items {
		if it.GetID() == id {
			r.items[i] = patch.Apply(it).WithID(id)
			return r.items[i], nil
		}
	}
	return zero, domain.ErrNotFound
}

func (r *stubRepo[T]) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	for i, it := range r.items {
		if it.GetID() == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *stubRepo[T]) FindBy(ctx context.Context, predicate func(T) bool) ([]T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	var out []T
	for _, it := range r.items {
		if predicate(it) {
			out = append(out, it)
		}
	}
	return out, nil
}

type stubQuerier struct {
	calls int
	fn    func(ownerID string, f ports.XPFilter) ([]domain.XP, error)
}

func (q *stubQuerier) FindXPByQuery(ctx context.Context, ownerID string, f ports.XPFilter) ([]domain.XP, error) {
	q.calls++
	return q.fn(ownerID, f)
}

func ptr[T any](v T) *T { return &v }
