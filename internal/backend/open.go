// Package backend selects the store.Store implementation named in config.
package backend

import (
	"context"
	"fmt"

	"todolist/internal/backend/firestoredb"
	"todolist/internal/backend/postgres"
	"todolist/internal/config"
	"todolist/internal/store"
)

// Open creates the store named by cfg.Settings.Backend.
func Open(ctx context.Context, cfg *config.Config) (store.Store, error) {
	switch cfg.Settings.Backend {
	case config.BackendFirestore, "":
		c, err := firestoredb.New(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return c, nil
	case config.BackendPostgres:
		s, err := postgres.Open(ctx, cfg.Settings.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown backend: %s", cfg.Settings.Backend)
	}
}
