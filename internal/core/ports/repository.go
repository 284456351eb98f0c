package ports

import "context"

// Record is implemented by every persisted entity. WithID returns a copy of the
// record carrying id.
type Record[T any] interface {
	GetID() string
	WithID(id string) T
}

// Patch merges a partial edit over the stored record.
type Patch[T any] interface {
	Apply(current T) T
}

// PatchFunc adapts a plain function to Patch.
type PatchFunc[T any] func(current T) T

func (f PatchFunc[T]) Apply(current T) T { return f(current) }

// Repository is the storage contract shared by every backend.
type Repository[T Record[T]] interface {
	// GetAll returns every stored record in no particular order.
	GetAll(ctx context.Context) ([]T, error)
	// GetByID reports absence through the boolean, never through the error.
	GetByID(ctx context.Context, id string) (T, bool, error)
	// Create ignores any id on item and assigns a fresh one.
	Create(ctx context.Context, item T) (T, error)
	// CreateWithID stores item under its own id, or fails with domain.ErrConflict.
	CreateWithID(ctx context.Context, item T) (T, error)
	// Update fails with domain.ErrNotFound when id is absent. The stored id
	// always wins over whatever the patch produces.
	Update(ctx context.Context, id string, patch Patch[T]) (T, error)
	// Delete is idempotent.
	Delete(ctx context.Context, id string) error
	// FindBy evaluates predicate in memory over the full set.
	FindBy(ctx context.Context, predicate func(T) bool) ([]T, error)
}
