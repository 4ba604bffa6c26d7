package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/careconnect/backend/internal/config"
)

var ErrNotFound = errors.New("blob not found")

// Store persists opaque JSON documents under string keys. Last write wins.
type Store interface {
	GetBlob(ctx context.Context, key string) ([]byte, error)
	PutBlob(ctx context.Context, key string, value []byte) error
	Close() error
}

// Open connects the backend named by cfg.Backend and prepares its schema.
func Open(ctx context.Context, cfg config.StoreConfig) (Store, error) {
	switch cfg.Backend {
	case "", "memory":
		return NewMemory(), nil
	case "sqlite":
		lite, err := NewSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return lite, nil
	case "postgres":
		pool, err := NewPostgresPool(ctx, cfg.Postgres)
		if err != nil {
			return nil, err
		}
		pg := &Postgres{Pool: pool}
		if err := pg.EnsureBlobSchema(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("failed to ensure blob schema: %w", err)
		}
		return pg, nil
	case "redis":
		rdb, err := NewRedis(ctx, cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		return rdb, nil
	default:
		return nil, fmt.Errorf("unknown STORE_BACKEND %q", cfg.Backend)
	}
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
