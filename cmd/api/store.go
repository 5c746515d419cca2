package main

import (
	"context"
	"fmt"
	"time"

	"github.com/geocoder89/userhub/internal/config"
	"github.com/geocoder89/userhub/internal/db"
	"github.com/geocoder89/userhub/internal/repo/memory"
	"github.com/geocoder89/userhub/internal/repo/mongodb"
	"github.com/geocoder89/userhub/internal/repo/postgres"
	"github.com/geocoder89/userhub/internal/users"
)

const dialTimeout = 5 * time.Second

// openStore connects the backend named by cfg.StoreDriver and returns a
// func that releases it.
func openStore(cfg config.Config) (users.Store, func(context.Context) error, error) {
	switch cfg.StoreDriver {
	case config.DriverMongo:
		ctx, cancel := config.WithTimeout(dialTimeout)
		defer cancel()

		client, err := db.NewMongoClient(ctx, cfg.MongoURI)
		if err != nil {
			return nil, nil, fmt.Errorf("connect mongo: %w", err)
		}

		return mongodb.NewUsersRepo(client, cfg.MongoDB, cfg.MongoCollection), client.Disconnect, nil

	case config.DriverPostgres:
		ctx, cancel := config.WithTimeout(dialTimeout)
		defer cancel()

		pool, err := db.NewPool(ctx, cfg.DBURL)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}

		repo := postgres.NewUsersRepo(pool)

		if err := repo.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("ensure schema: %w", err)
		}

		return repo, func(context.Context) error { pool.Close(); return nil }, nil

	case config.DriverMemory:
		return memory.NewUsersRepo(), func(context.Context) error { return nil }, nil

	default:
		return nil, nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
}
