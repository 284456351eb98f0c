package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "xp-tracker:"

// BlobStore keeps each local-store blob in a single Redis string so that
// several API instances can share one local store.
// Key format: xp-tracker:<entity key>
type BlobStore struct {
	client *redis.Client
}

// NewBlobStore creates a BlobStore wrapping the given Redis client.
func NewBlobStore(client *redis.Client) *BlobStore {
	return &BlobStore{client: client}
}

// Load returns the stored blob; a missing key is not an error.
func (b *BlobStore) Load(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := b.client.Get(ctx, b.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis get: %w", err)
	}
	return data, true, nil
}

// Save overwrites the blob. Blobs never expire.
func (b *BlobStore) Save(ctx context.Context, key string, data []byte) error {
	if err := b.client.Set(ctx, b.key(key), data, 0).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (b *BlobStore) key(key string) string {
	return keyPrefix + key
}
