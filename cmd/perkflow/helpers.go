package main

import (
	"context"
	"fmt"

	"github.com/spf13/viper"

	"github.com/perkflow/perkflow/internal/catalog"
	"github.com/perkflow/perkflow/internal/config"
	"github.com/perkflow/perkflow/internal/service"
	"github.com/perkflow/perkflow/internal/storage"
)

// initStorage initializes the storage service with proper path expansion.
func initStorage(ctx context.Context) (service.Storage, error) {
	dbPath, err := config.DatabasePath()
	if err != nil {
		return nil, err
	}

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// loadCatalog returns the configured provider catalogue: a YAML file when
// one is set, the built-in table otherwise.
func loadCatalog() (*catalog.Catalog, error) {
	if path := viper.GetString("catalog.path"); path != "" {
		cat, err := catalog.LoadFile(config.ExpandPath(path))
		if err != nil {
			return nil, fmt.Errorf("failed to load catalogue: %w", err)
		}
		return cat, nil
	}
	return catalog.Default(), nil
}

// formatDollars renders a whole-currency value for display.
func formatDollars(v int64) string {
	return fmt.Sprintf("$%d", v)
}
