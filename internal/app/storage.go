// Package app assembles the storage backend and services selected by the
// configuration. Both commands build on it.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/xplog/xp-tracker/internal/core/domain"
	"github.com/xplog/xp-tracker/internal/core/ports"
	"github.com/xplog/xp-tracker/internal/infrastructure/config"
	"github.com/xplog/xp-tracker/internal/infrastructure/db/instrumented"
	"github.com/xplog/xp-tracker/internal/infrastructure/db/localstore"
	"github.com/xplog/xp-tracker/internal/infrastructure/db/mongo"
	"github.com/xplog/xp-tracker/internal/infrastructure/db/redis"
	"github.com/xplog/xp-tracker/internal/infrastructure/http/handlers"
)

// Storage holds one repository per entity type, all on the same backend.
type Storage struct {
	Backend    string
	XPs        ports.Repository[domain.XP]
	Categories ports.Repository[domain.Category]
	Users      ports.Repository[domain.User]
	// XPQuerier is nil unless the backend can evaluate XP filters natively.
	XPQuerier ports.XPQuerier
	// Checks are the readiness probes for the backend's connections.
	Checks map[string]handlers.Check

	closers []func(context.Context) error
}

// Close releases backend connections.
func (s *Storage) Close(ctx context.Context) error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// OpenStorage connects the backend named by cfg.Storage.Backend.
func OpenStorage(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Storage, error) {
	switch cfg.Storage.Backend {
	case config.BackendDocument:
		return openDocument(ctx, cfg, log)
	case config.BackendLocal:
		blob, st, err := openBlobStore(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		return localStorage(blob, st), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

// openBlobStore returns the blob store behind the local backend along with a
// Storage carrying its closers and checks. A nil blob store is returned for
// config.BlobNone.
func openBlobStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (localstore.BlobStore, *Storage, error) {
	st := &Storage{Checks: map[string]handlers.Check{}}

	switch cfg.Storage.LocalBlob {
	case config.BlobFile:
		fs, err := localstore.NewFSBlobStore(afero.NewOsFs(), cfg.Storage.DataDir)
		if err != nil {
			return nil, nil, err
		}
		log.Info().Str("dir", cfg.Storage.DataDir).Msg("local store on filesystem")
		return fs, st, nil

	case config.BlobRedis:
		rdb, err := redis.Connect(ctx, redis.Config{
			URL:      cfg.Redis.URL,
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, nil, err
		}
		st.Checks["redis"] = handlers.RedisCheck(rdb)
		st.closers = append(st.closers, func(context.Context) error { return rdb.Close() })
		log.Info().Str("addr", cfg.Redis.Addr).Msg("local store on redis")
		return redis.NewBlobStore(rdb), st, nil

	case config.BlobMemory:
		log.Warn().Msg("local store in memory, data is lost on exit")
		return localstore.NewMemoryBlobStore(), st, nil

	case config.BlobNone:
		log.Warn().Msg("local store unavailable, writes will fail")
		return nil, st, nil

	default:
		return nil, nil, fmt.Errorf("unknown local blob store %q", cfg.Storage.LocalBlob)
	}
}

// localStorage builds the local backend over blob. st carries whatever the
// blob store needs closed.
func localStorage(blob localstore.BlobStore, st *Storage) *Storage {
	if st == nil {
		st = &Storage{}
	}
	st.Backend = config.BackendLocal
	st.XPs = instrumented.Wrap[domain.XP](localstore.NewRepository[domain.XP](blob, localstore.KeyXPs), "xps", config.BackendLocal)
	st.Categories = instrumented.Wrap[domain.Category](localstore.NewRepository[domain.Category](blob, localstore.KeyCategories), "categories", config.BackendLocal)
	st.Users = instrumented.Wrap[domain.User](localstore.NewRepository[domain.User](blob, localstore.KeyUsers), "users", config.BackendLocal)
	return st
}

func openDocument(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Storage, error) {
	client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return nil, err
	}
	if err := mongo.EnsureIndexes(ctx, db); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	log.Info().Str("database", cfg.Mongo.Database).Msg("document store connected")

	xps := mongo.NewXPRepository(db)
	return &Storage{
		Backend:    config.BackendDocument,
		XPs:        instrumented.Wrap[domain.XP](xps, "xps", config.BackendDocument),
		Categories: instrumented.Wrap[domain.Category](mongo.NewRepository[domain.Category](db, mongo.CollectionCategories), "categories", config.BackendDocument),
		Users:      instrumented.Wrap[domain.User](mongo.NewRepository[domain.User](db, mongo.CollectionUsers), "users", config.BackendDocument),
		XPQuerier:  instrumented.WrapXPQuerier(xps, config.BackendDocument),
		Checks:     map[string]handlers.Check{"mongodb": handlers.MongoCheck(db)},
		closers:    []func(context.Context) error{client.Disconnect},
	}, nil
}
