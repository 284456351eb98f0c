package config

import (
	"context"
	"testing"

	"github.com/sethvargo/go-envconfig"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %q", cfg.Port)
	}
	if cfg.Storage.Backend != BackendLocal {
		t.Errorf("expected local backend, got %q", cfg.Storage.Backend)
	}
	if cfg.Storage.LocalBlob != BlobFile {
		t.Errorf("expected file blob, got %q", cfg.Storage.LocalBlob)
	}
	if cfg.Seed.OwnerID != "user-1" {
		t.Errorf("expected seed owner user-1, got %q", cfg.Seed.OwnerID)
	}
	if cfg.Seed.OnStart {
		t.Error("seeding on start must be off by default")
	}
	if !cfg.IsDevelopment() {
		t.Error("expected development env by default")
	}
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"STORAGE_BACKEND": " Document ",
		"LOCAL_BLOB":      "redis",
		"MONGO_DB":        "xp_test",
		"SEED_ON_START":   "true",
		"REDIS_DB":        "3",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Storage.Backend != BackendDocument {
		t.Errorf("expected document backend, got %q", cfg.Storage.Backend)
	}
	if cfg.Mongo.Database != "xp_test" {
		t.Errorf("expected mongo db xp_test, got %q", cfg.Mongo.Database)
	}
	if !cfg.Seed.OnStart {
		t.Error("expected SEED_ON_START to be parsed")
	}
	if cfg.Redis.DB != 3 {
		t.Errorf("expected redis db 3, got %d", cfg.Redis.DB)
	}
}

func TestLoad_UnknownBackend(t *testing.T) {
	_, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"STORAGE_BACKEND": "firestore",
	}))
	if err == nil {
		t.Fatal("expected error for unknown backend")
	}
}
