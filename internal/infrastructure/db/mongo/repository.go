package mongo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/xplog/xp-tracker/internal/core/domain"
	"github.com/xplog/xp-tracker/internal/core/ports"
)

// Repository implements ports.Repository over a single collection. Record types
// map their ID to _id and mark optional fields omitempty, so unset fields never
// reach the document. Driver errors are wrapped and returned without retry.
type Repository[T ports.Record[T]] struct {
	col *mongo.Collection
}

var (
	_ ports.Repository[domain.Category] = (*Repository[domain.Category])(nil)
	_ ports.Repository[domain.User]     = (*Repository[domain.User])(nil)
)

func NewRepository[T ports.Record[T]](db *mongo.Database, collection string) *Repository[T] {
	return &Repository[T]{col: db.Collection(collection)}
}

func (r *Repository[T]) GetAll(ctx context.Context) ([]T, error) {
	return r.find(ctx, bson.M{})
}

func (r *Repository[T]) find(ctx context.Context, filter any, opts ...*options.FindOptions) ([]T, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", r.col.Name(), err)
	}
	items := []T{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", r.col.Name(), err)
	}
	return items, nil
}

func (r *Repository[T]) GetByID(ctx context.Context, id string) (T, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var item T
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&item)
	if err != nil {
		var zero T
		if errors.Is(err, mongo.ErrNoDocuments) {
			return zero, false, nil
		}
		return zero, false, fmt.Errorf("find %s %s: %w", r.col.Name(), id, err)
	}
	return item, true, nil
}

func (r *Repository[T]) Create(ctx context.Context, item T) (T, error) {
	return r.insert(ctx, item.WithID(uuid.NewString()))
}

// CreateWithID relies on _id uniqueness, so the existence check and the write
// are a single atomic step.
func (r *Repository[T]) CreateWithID(ctx context.Context, item T) (T, error) {
	return r.insert(ctx, item)
}

func (r *Repository[T]) insert(ctx context.Context, item T) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var zero T
	if _, err := r.col.InsertOne(ctx, item); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return zero, fmt.Errorf("%s %s: %w", r.col.Name(), item.GetID(), domain.ErrConflict)
		}
		return zero, fmt.Errorf("insert %s: %w", r.col.Name(), err)
	}
	return item, nil
}

func (r *Repository[T]) Update(ctx context.Context, id string, patch ports.Patch[T]) (T, error) {
	var zero T
	existing, ok, err := r.GetByID(ctx, id)
	if err != nil {
		return zero, err
	}
	if !ok {
		return zero, fmt.Errorf("%s %s: %w", r.col.Name(), id, domain.ErrNotFound)
	}

	merged := patch.Apply(existing).WithID(existing.GetID())

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": id}, merged)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return zero, fmt.Errorf("%s %s: %w", r.col.Name(), id, domain.ErrConflict)
		}
		return zero, fmt.Errorf("replace %s %s: %w", r.col.Name(), id, err)
	}
	if res.MatchedCount == 0 {
		return zero, fmt.Errorf("%s %s: %w", r.col.Name(), id, domain.ErrNotFound)
	}
	return merged, nil
}

func (r *Repository[T]) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("delete %s %s: %w", r.col.Name(), id, err)
	}
	return nil
}

// FindBy fetches the whole collection and filters it in memory.
func (r *Repository[T]) FindBy(ctx context.Context, predicate func(T) bool) ([]T, error) {
	items, err := r.GetAll(ctx)
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
