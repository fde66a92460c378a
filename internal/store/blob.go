package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/redis/go-redis/v9"
)

// ErrBlobNotFound signals that nothing has been persisted yet under the
// storage key. Callers fall back to the seed dataset; it is not a failure.
var ErrBlobNotFound = errors.New("blob not found")

// Blob reads and writes the single serialized event collection kept under a
// fixed storage key. Implementations overwrite the whole payload on write.
type Blob interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, data []byte) error
}

// FileBlob keeps the collection as a JSON file under the data directory.
type FileBlob struct {
	path string
}

// NewFileBlob resolves the blob path from the data dir and storage key.
func NewFileBlob(dataDir, storageKey string) *FileBlob {
	return &FileBlob{path: filepath.Join(dataDir, storageKey+".json")}
}

// Read returns the persisted payload or ErrBlobNotFound.
func (b *FileBlob) Read(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(b.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrBlobNotFound
		}
		return nil, fmt.Errorf("read blob %s: %w", b.path, err)
	}
	return data, nil
}

// Write overwrites the persisted payload.
func (b *FileBlob) Write(_ context.Context, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(b.path), 0o755); err != nil {
		return fmt.Errorf("prepare data directory: %w", err)
	}
	if err := os.WriteFile(b.path, data, 0o644); err != nil {
		return fmt.Errorf("write blob %s: %w", b.path, err)
	}
	return nil
}

// RedisBlob keeps the collection as a single Redis string value.
type RedisBlob struct {
	client *redis.Client
	key    string
}

// NewRedisBlob wraps a Redis client around the storage key.
func NewRedisBlob(client *redis.Client, storageKey string) *RedisBlob {
	return &RedisBlob{client: client, key: storageKey}
}

// Read returns the persisted payload or ErrBlobNotFound.
func (b *RedisBlob) Read(ctx context.Context) ([]byte, error) {
	data, err := b.client.Get(ctx, b.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrBlobNotFound
		}
		return nil, fmt.Errorf("redis get %s: %w", b.key, err)
	}
	return data, nil
}

// Write overwrites the persisted payload. The blob never expires.
func (b *RedisBlob) Write(ctx context.Context, data []byte) error {
	if err := b.client.Set(ctx, b.key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", b.key, err)
	}
	return nil
}
