package bootstrap

import (
	"context"
	"database/sql"
	"log"

	"github.com/redis/go-redis/v9"

	"github.com/swapnilyadv/CloneX/config"
	"github.com/swapnilyadv/CloneX/internal/projects/repository"
	"github.com/swapnilyadv/CloneX/internal/storage"
	"github.com/swapnilyadv/CloneX/internal/storage/postgres"
)

// Backends holds the open connections; either may be nil when not configured.
type Backends struct {
	DB    *sql.DB
	Redis *redis.Client
}

func (b *Backends) Close() {
	if b.DB != nil {
		_ = b.DB.Close()
	}
	if b.Redis != nil {
		_ = b.Redis.Close()
	}
}

// OpenBackends connects to whatever the config names.
func OpenBackends(ctx context.Context, cfg *config.Config) (*Backends, error) {
	b := &Backends{}
	if cfg.Database.Host != "" {
		db, err := postgres.NewConnection(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		b.DB = db
	}
	if cfg.Redis.Addr != "" {
		rdb, err := storage.NewRedis(ctx, cfg.Redis)
		if err != nil {
			b.Close()
			return nil, err
		}
		b.Redis = rdb
	}
	return b, nil
}

// ProjectStore picks the store for the configured backends: Postgres or
// memory, with a Redis cache in front when Redis is available.
func ProjectStore(b *Backends, cfg *config.Config) repository.Store {
	var store repository.Store
	if b.DB != nil {
		store = repository.NewProjectRepository(b.DB)
	} else {
		log.Println("[store] DB_HOST not set, using in-memory project store")
		store = repository.NewMemoryStore()
	}
	if b.Redis != nil {
		store = repository.NewCachedStore(store, b.Redis, cfg.Redis.CacheTTL)
	}
	return store
}
