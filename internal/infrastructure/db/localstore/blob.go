package localstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/spf13/afero"
)

// BlobStore holds one opaque serialized value per key.
type BlobStore interface {
	// Load reports a missing key through the boolean.
	Load(ctx context.Context, key string) ([]byte, bool, error)
	Save(ctx context.Context, key string, data []byte) error
}

// MemoryBlobStore keeps blobs in process memory.
type MemoryBlobStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

func NewMemoryBlobStore() *MemoryBlobStore {
	return &MemoryBlobStore{blobs: make(map[string][]byte)}
}

func (m *MemoryBlobStore) Load(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.blobs[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), b...), true, nil
}

func (m *MemoryBlobStore) Save(_ context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[key] = append([]byte(nil), data...)
	return nil
}

// FSBlobStore writes each key to <dir>/<key>.json on an afero filesystem.
// Saves go through a temporary file and a rename, so a reader never observes a
// partially written blob.
type FSBlobStore struct {
	fs  afero.Fs
	dir string
}

func NewFSBlobStore(fsys afero.Fs, dir string) (*FSBlobStore, error) {
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FSBlobStore{fs: fsys, dir: dir}, nil
}

func (f *FSBlobStore) Load(_ context.Context, key string) ([]byte, bool, error) {
	data, err := afero.ReadFile(f.fs, f.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read blob %s: %w", key, err)
	}
	return data, true, nil
}

func (f *FSBlobStore) Save(_ context.Context, key string, data []byte) error {
	tmp := filepath.Join(f.dir, "."+key+"-"+uuid.NewString()+".tmp")
	if err := afero.WriteFile(f.fs, tmp, data, 0o644); err != nil {
		return fmt.Errorf("write blob %s: %w", key, err)
	}
	if err := f.fs.Rename(tmp, f.path(key)); err != nil {
		_ = f.fs.Remove(tmp)
		return fmt.Errorf("commit blob %s: %w", key, err)
	}
	return nil
}

func (f *FSBlobStore) path(key string) string {
	return filepath.Join(f.dir, key+".json")
}
