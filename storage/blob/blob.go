// Package blob provides whole-value storage for entity collections: one key
// per collection, each holding a JSON array. Saves replace the stored value
// atomically; there is no partial write. Reads and writes on a shared external
// backend (redis, postgres) are NOT serialized across processes, so two racing
// writers to the same key last-writer-wins the entire collection. Single
// deployment per store is assumed; a multi-writer setup needs version tokens
// or a per-key write queue in front of this package.
package blob

import (
	"context"
	"errors"
	"fmt"

	"github.com/unitrack/unitrack/core"
)

// ErrKeyNotFound is returned by Load for keys that were never saved.
var ErrKeyNotFound = errors.New("blob: key not found")

// Store is the minimal whole-value contract the entity repositories build on.
type Store interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
}

// Open builds the Store selected by the storage configuration.
func Open(conf core.StorageConfig) (Store, error) {
	switch conf.Backend {
	case "memory":
		return NewMemoryStore(), nil
	case "filesystem", "":
		return NewFilesystemStore(conf.DataDir)
	case "redis":
		return NewRedisStore(conf.RedisAddr, conf.RedisDB), nil
	case "postgres":
		return NewPostgresStore(conf.DatabaseURL)
	default:
		return nil, fmt.Errorf("blob: unknown backend %q", conf.Backend)
	}
}
