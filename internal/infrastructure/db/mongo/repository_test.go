package mongo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	tcmongo "github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/xplog/xp-tracker/internal/core/domain"
	"github.com/xplog/xp-tracker/internal/core/ports"
	"github.com/xplog/xp-tracker/internal/infrastructure/db/testsuite"
)

// startMongo runs a throwaway MongoDB and returns a connected client. The
// test is skipped under -short or when no container runtime is reachable.
func startMongo(t *testing.T) *mongo.Client {
	t.Helper()
	if testing.Short() {
		t.Skip("integration test skipped in short mode")
	}

	ctx := context.Background()
	container, err := tcmongo.Run(ctx, "mongo:7")
	if err != nil {
		t.Skipf("could not start mongodb container: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Errorf("failed to terminate container: %v", err)
		}
	})

	uri, err := container.ConnectionString(ctx)
	if err != nil {
		t.Fatalf("could not retrieve connection string: %v", err)
	}

	client, _, err := Connect(ctx, Config{URI: uri, Database: "unused", Timeout: 30 * time.Second})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })
	return client
}

// freshDB returns an indexed database no other test uses.
func freshDB(t *testing.T, client *mongo.Client) *mongo.Database {
	t.Helper()
	db := client.Database("xp_" + uuid.NewString()[:8])
	if err := EnsureIndexes(context.Background(), db); err != nil {
		t.Fatalf("ensure indexes: %v", err)
	}
	return db
}

func TestMongoBackend(t *testing.T) {
	client := startMongo(t)

	t.Run("Contract", func(t *testing.T) {
		testsuite.TestRepository(t, func(t *testing.T) ports.Repository[domain.XP] {
			return NewXPRepository(freshDB(t, client))
		})
	})

	t.Run("QueryMatchesInMemoryFilter", func(t *testing.T) {
		repo := NewXPRepository(freshDB(t, client))
		testsuite.TestXPQuery(t, repo, repo)
	})

	t.Run("DocumentLayout", func(t *testing.T) {
		ctx := context.Background()
		db := freshDB(t, client)
		repo := NewRepository[domain.Category](db, CollectionCategories)

		if _, err := repo.CreateWithID(ctx, domain.Category{ID: "1", Title: "react", OwnerID: "u1"}); err != nil {
			t.Fatalf("create: %v", err)
		}

		var raw bson.M
		if err := db.Collection(CollectionCategories).FindOne(ctx, bson.M{"_id": "1"}).Decode(&raw); err != nil {
			t.Fatalf("raw find: %v", err)
		}
		if _, ok := raw["id"]; ok {
			t.Fatalf("id must only live in _id: %v", raw)
		}
		for _, absent := range []string{"description", "color"} {
			if _, ok := raw[absent]; ok {
				t.Fatalf("absent field %q was written: %v", absent, raw)
			}
		}
	})

	t.Run("UniqueEmail", func(t *testing.T) {
		ctx := context.Background()
		repo := NewRepository[domain.User](freshDB(t, client), CollectionUsers)

		if _, err := repo.Create(ctx, domain.User{Email: "a@example.com"}); err != nil {
			t.Fatalf("first create: %v", err)
		}
		_, err := repo.Create(ctx, domain.User{Email: "a@example.com"})
		if !errors.Is(err, domain.ErrConflict) {
			t.Fatalf("expected ErrConflict, got %v", err)
		}
	})
}

func TestXPQueryFilter(t *testing.T) {
	start := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 5, 10, 23, 59, 59, int(999*time.Millisecond), time.UTC)

	f := xpQueryFilter("u1", ports.XPFilter{StartDate: &start, EndDate: &end, CategoryTitles: []string{"react"}})

	if f["ownerId"] != "u1" {
		t.Fatalf("unexpected owner clause: %v", f)
	}
	rng, ok := f["createdAt"].(bson.M)
	if !ok || rng["$gte"] != "2024-05-10T00:00:00.000Z" || rng["$lte"] != "2024-05-10T23:59:59.999Z" {
		t.Fatalf("unexpected range clause: %v", f["createdAt"])
	}
	if _, ok := f["tags"]; !ok {
		t.Fatalf("missing tag clause")
	}

	f = xpQueryFilter("u1", ports.XPFilter{StartDate: &start})
	if _, ok := f["createdAt"]; ok {
		t.Fatalf("a single bound must not filter by date: %v", f)
	}
}
