// Package store provides the key/value collection store the repositories
// persist through. Keys are well-known collection names and values are
// JSON-serialized arrays of records; Set always replaces the whole value, so
// callers read-modify-write the full collection for any mutation.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/edudesk/edudesk/internal/config"
)

// Store is the adapter contract. Get reports absence through the boolean
// rather than an error so callers can default to an empty collection.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Keys(ctx context.Context) ([]string, error)
	Close() error
}

// Drivers accepted by config.
const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
)

// Open builds a store from config. The memory driver is the demo path; file
// keeps collections on disk; redis and postgres back the server path.
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.Store.Driver {
	case DriverMemory, "":
		return NewMemory(), nil
	case DriverFile:
		return NewFile(cfg.Store.Path)
	case DriverRedis:
		client := redis.NewClient(&redis.Options{
			Addr:         cfg.Redis.Addr,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			DialTimeout:  2 * time.Second,
			ReadTimeout:  1 * time.Second,
			WriteTimeout: 1 * time.Second,
		})
		return NewRedis(client, cfg.Store.Prefix), nil
	case DriverPostgres:
		return NewPostgres(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}
