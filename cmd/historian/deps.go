package main

import (
	"context"
	"fmt"
	"os"

	"github.com/ersonp/historian/internal/application/handlers"
	"github.com/ersonp/historian/internal/domain/ports"
	"github.com/ersonp/historian/internal/domain/services"
	"github.com/ersonp/historian/internal/infrastructure/config"
	"github.com/ersonp/historian/internal/infrastructure/relationaldb/sqlite"
)

// withStore loads config, opens the archive store with its schema in
// place, calls fn, and cleans up.
func withStore(ctx context.Context, fn func(*config.Config, ports.ArchiveStore) error) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	store, err := sqlite.NewRepository(config.SQLiteConfig{Path: cfg.DatabasePath(cwd)})
	if err != nil {
		return fmt.Errorf("creating sqlite repository: %w", err)
	}
	defer store.Close()

	if err := store.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("ensuring schema: %w", err)
	}

	return fn(cfg, store)
}

// withEnrichmentHandler provides the enrichment handler for read commands.
func withEnrichmentHandler(ctx context.Context, fn func(*config.Config, *handlers.EnrichmentHandler) error) error {
	return withStore(ctx, func(cfg *config.Config, store ports.ArchiveStore) error {
		service := services.NewEnrichmentService(store)
		return fn(cfg, handlers.NewEnrichmentHandler(service))
	})
}

// withIngestionHandler provides the ingestion handler for write commands.
func withIngestionHandler(ctx context.Context, fn func(*handlers.IngestionHandler) error) error {
	return withStore(ctx, func(_ *config.Config, store ports.ArchiveStore) error {
		service := services.NewIngestionService(store)
		return fn(handlers.NewIngestionHandler(service))
	})
}
