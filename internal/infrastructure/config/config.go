package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/sethvargo/go-envconfig"
)

// Storage backends.
const (
	BackendLocal    = "local"
	BackendDocument = "document"
)

// Blob stores behind the local backend. "none" leaves the local store
// unavailable: reads return nothing and writes fail.
const (
	BlobFile   = "file"
	BlobRedis  = "redis"
	BlobMemory = "memory"
	BlobNone   = "none"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	Storage StorageConfig
	Seed    SeedConfig
	Mongo   MongoConfig
	Redis   RedisConfig
}

type StorageConfig struct {
	Backend   string `env:"STORAGE_BACKEND, default=local"`
	LocalBlob string `env:"LOCAL_BLOB,      default=file"`
	DataDir   string `env:"DATA_DIR,        default=var/data"`
}

type SeedConfig struct {
	OwnerID string `env:"SEED_OWNER_ID, default=user-1"`
	OnStart bool   `env:"SEED_ON_START, default=false"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=xp_tracker"`
}

type RedisConfig struct {
	URL      string `env:"REDIS_URL"`
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

// IsDevelopment enables human-friendly log output.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Validate rejects unknown backend names.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendLocal, BackendDocument:
	default:
		return fmt.Errorf("config: unknown STORAGE_BACKEND %q", c.Storage.Backend)
	}
	switch c.Storage.LocalBlob {
	case BlobFile, BlobRedis, BlobMemory, BlobNone:
	default:
		return fmt.Errorf("config: unknown LOCAL_BLOB %q", c.Storage.LocalBlob)
	}
	return nil
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	cfg.Storage.Backend = strings.ToLower(strings.TrimSpace(cfg.Storage.Backend))
	cfg.Storage.LocalBlob = strings.ToLower(strings.TrimSpace(cfg.Storage.LocalBlob))
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
