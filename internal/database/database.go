package database

import (
	"context"
	"fmt"

	"github.com/ds124wfegd/visionpipe/config"
	"github.com/ds124wfegd/visionpipe/internal/entity"
	"github.com/ds124wfegd/visionpipe/internal/pkg/firestore"
	"github.com/ds124wfegd/visionpipe/internal/pkg/postgres"
	"github.com/ds124wfegd/visionpipe/internal/pkg/redis"
)

// NewResultRepository connects the configured result store.
func NewResultRepository(ctx context.Context, cfg config.StoreConfig) (ResultRepository, error) {
	switch cfg.Backend {
	case "", "firestore":
		client, err := firestore.NewClient(ctx, cfg.Firestore)
		if err != nil {
			return nil, err
		}
		return NewFirestoreRepository(client, cfg.Firestore.Collection), nil

	case "redis":
		client, err := redis.NewRedisClient(ctx, &cfg.Redis)
		if err != nil {
			return nil, err
		}
		return NewRedisRepository(client, cfg.Redis.KeyPrefix, cfg.Redis.TTL), nil

	case "postgres":
		db, err := postgres.NewPostgresDB(ctx, &cfg.Database)
		if err != nil {
			return nil, err
		}
		if err := postgres.RunMigrations(ctx, db); err != nil {
			db.Close()
			return nil, err
		}
		return NewPostgresRepository(db), nil

	default:
		return nil, fmt.Errorf("%w: result store %q", entity.ErrUnknownBackend, cfg.Backend)
	}
}
