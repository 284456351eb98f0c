package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/xplog/xp-tracker/internal/core/domain"
	"github.com/xplog/xp-tracker/internal/core/ports"
)

// XPRepository is the generic repository for the xps collection plus a
// push-down query path.
type XPRepository struct {
	*Repository[domain.XP]
}

var (
	_ ports.Repository[domain.XP] = (*XPRepository)(nil)
	_ ports.XPQuerier             = (*XPRepository)(nil)
)

func NewXPRepository(db *mongo.Database) *XPRepository {
	return &XPRepository{Repository: NewRepository[domain.XP](db, CollectionXPs)}
}

// FindXPByQuery evaluates filter inside MongoDB. createdAt is stored in
// domain.TimestampLayout, so the range is a plain string range on the same
// layout.
func (r *XPRepository) FindXPByQuery(ctx context.Context, ownerID string, f ports.XPFilter) ([]domain.XP, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "createdAt", Value: -1},
		{Key: "_id", Value: 1},
	})
	return r.find(ctx, xpQueryFilter(ownerID, f), opts)
}

func xpQueryFilter(ownerID string, f ports.XPFilter) bson.M {
	filter := bson.M{"ownerId": ownerID}
	if f.HasDateRange() {
		filter["createdAt"] = bson.M{
			"$gte": domain.FormatTimestamp(*f.StartDate),
			"$lte": domain.FormatTimestamp(*f.EndDate),
		}
	}
	if len(f.CategoryTitles) > 0 {
		filter["tags"] = bson.M{"$in": f.CategoryTitles}
	}
	return filter
}
