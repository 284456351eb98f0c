// Package instrumented decorates repositories with Prometheus metrics.
package instrumented

import (
	"context"
	"errors"
	"time"

	"github.com/xplog/xp-tracker/internal/api/metrics"
	"github.com/xplog/xp-tracker/internal/core/domain"
	"github.com/xplog/xp-tracker/internal/core/ports"
)

// Repository records a counter and a latency sample for every call to the
// wrapped repository. Results and errors pass through untouched.
type Repository[T ports.Record[T]] struct {
	next    ports.Repository[T]
	entity  string
	backend string
}

var (
	_ ports.Repository[domain.XP] = (*Repository[domain.XP])(nil)
	_ ports.XPQuerier             = (*XPQuerier)(nil)
)

func Wrap[T ports.Record[T]](next ports.Repository[T], entity, backend string) *Repository[T] {
	return &Repository[T]{next: next, entity: entity, backend: backend}
}

func (r *Repository[T]) observe(op string, start time.Time, err error) {
	observe(r.entity, r.backend, op, start, err)
}

func (r *Repository[T]) GetAll(ctx context.Context) ([]T, error) {
	start := time.Now()
	items, err := r.next.GetAll(ctx)
	r.observe("get_all", start, err)
	return items, err
}

func (r *Repository[T]) GetByID(ctx context.Context, id string) (T, bool, error) {
	start := time.Now()
	item, ok, err := r.next.GetByID(ctx, id)
	if err == nil && !ok {
		r.observe("get_by_id", start, domain.ErrNotFound)
	} else {
		r.observe("get_by_id", start, err)
	}
	return item, ok, err
}

func (r *Repository[T]) Create(ctx context.Context, item T) (T, error) {
	start := time.Now()
	created, err := r.next.Create(ctx, item)
	r.observe("create", start, err)
	return created, err
}

func (r *Repository[T]) CreateWithID(ctx context.Context, item T) (T, error) {
	start := time.Now()
	created, err := r.next.CreateWithID(ctx, item)
	r.observe("create_with_id", start, err)
	return created, err
}

func (r *Repository[T]) Update(ctx context.Context, id string, patch ports.Patch[T]) (T, error) {
	start := time.Now()
	updated, err := r.next.Update(ctx, id, patch)
	r.observe("update", start, err)
	return updated, err
}

func (r *Repository[T]) Delete(ctx context.Context, id string) error {
	start := time.Now()
	err := r.next.Delete(ctx, id)
	r.observe("delete", start, err)
	return err
}

func (r *Repository[T]) FindBy(ctx context.Context, predicate func(T) bool) ([]T, error) {
	start := time.Now()
	items, err := r.next.FindBy(ctx, predicate)
	r.observe("find_by", start, err)
	return items, err
}

// XPQuerier instruments the push-down path.
type XPQuerier struct {
	next    ports.XPQuerier
	backend string
}

func WrapXPQuerier(next ports.XPQuerier, backend string) *XPQuerier {
	return &XPQuerier{next: next, backend: backend}
}

func (q *XPQuerier) FindXPByQuery(ctx context.Context, ownerID string, f ports.XPFilter) ([]domain.XP, error) {
	start := time.Now()
	items, err := q.next.FindXPByQuery(ctx, ownerID, f)
	observe("xps", q.backend, "find_by_query", start, err)
	return items, err
}

func observe(entity, backend, op string, start time.Time, err error) {
	metrics.StorageOperationDuration.WithLabelValues(entity, backend, op).Observe(time.Since(start).Seconds())
	metrics.StorageOperationsTotal.WithLabelValues(entity, backend, op, result(err)).Inc()
}

func result(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrConflict):
		return "conflict"
	case errors.Is(err, domain.ErrUnavailable):
		return "unavailable"
	default:
		return "error"
	}
}
