// Package storage opens the local key/value store selected by config and
// prepares it for use (migrations for SQLite, a connectivity check for Redis).
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/footcap/internal/client/config"
	"github.com/dmitrijs2005/footcap/internal/client/migrations"
	"github.com/dmitrijs2005/footcap/internal/client/repositories/kv"
	"github.com/dmitrijs2005/footcap/internal/filex"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"
)

const redisPingTimeout = 2 * time.Second

// Store is an opened backend. Close releases the underlying connection.
type Store struct {
	KV    kv.Repository
	close func() error
}

func (s *Store) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// InitDatabase opens (creating if needed) the SQLite file at dsn and brings
// its schema up to date.
func InitDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Open returns the backend named by cfg.StorageBackend.
func Open(ctx context.Context, cfg *config.Config) (*Store, error) {
	switch cfg.StorageBackend {
	case config.BackendSQLite, "":
		path, err := filex.EnsureParentDir(cfg.DatabasePath)
		if err != nil {
			return nil, err
		}
		db, err := InitDatabase(ctx, path)
		if err != nil {
			return nil, err
		}
		return &Store{KV: kv.NewSQLiteRepository(db), close: db.Close}, nil

	case config.BackendMemory:
		return &Store{KV: kv.NewMemoryRepository()}, nil

	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})

		pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			client.Close()
			return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.RedisAddr, err)
		}
		return &Store{KV: kv.NewRedisRepository(client, cfg.RedisPrefix), close: client.Close}, nil

	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}
