package main

import (
	"context"
	"fmt"

	"posecraft/internal/config"
	"posecraft/internal/snapshot"
	"posecraft/internal/snapshot/postgres"
	"posecraft/internal/snapshot/sqlite"
)

func openStore(ctx context.Context, cfg *config.ProjectConfig) (snapshot.Store, error) {
	var store snapshot.Store
	switch cfg.Store.Backend {
	case config.BackendMemory:
		store = snapshot.NewMemory()
	case config.BackendSQLite:
		client, err := sqlite.New(ctx, cfg.Store.DSN)
		if err != nil {
			return nil, err
		}
		store = client
	case config.BackendPostgres:
		client, err := postgres.New(ctx, cfg.Store.DSN)
		if err != nil {
			return nil, err
		}
		store = client
	default:
		return nil, fmt.Errorf("unknown store backend: %s", cfg.Store.Backend)
	}

	if err := store.EnsureSchema(ctx); err != nil {
		store.Close(ctx)
		return nil, err
	}
	return store, nil
}
