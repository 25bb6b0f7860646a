package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Veraticus/retail-sales/internal/browse"
	"github.com/Veraticus/retail-sales/internal/config"
	"github.com/Veraticus/retail-sales/internal/source"
	"github.com/Veraticus/retail-sales/internal/storage"
)

// openSource returns the configured record source: the SQLite store when a
// database path is set, otherwise the mock generator. The returned cleanup
// must be called when the source is no longer needed.
func openSource(ctx context.Context, cfg *config.Config) (source.Source, func(), error) {
	if cfg.Source.DBPath == "" {
		slog.Debug("generating records", "count", cfg.Source.Records, "seed", cfg.Source.Seed)
		return source.NewGenerator(cfg.Generator()), func() {}, nil
	}

	store, err := storage.Open(ctx, cfg.Source.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	cleanup := func() {
		if err := store.Close(); err != nil {
			slog.Error("Failed to close database", "error", err)
		}
	}

	slog.Debug("reading records from database", "path", store.Path())
	return store, cleanup, nil
}

// loadBrowser loads every record from the configured source into a Browser.
func loadBrowser(ctx context.Context, opts ...browse.Option) (browse.Browser, error) {
	cfg, err := config.Load()
	if err != nil {
		return browse.Browser{}, err
	}

	src, cleanup, err := openSource(ctx, cfg)
	if err != nil {
		return browse.Browser{}, err
	}
	defer cleanup()

	records, err := src.Records(ctx)
	if err != nil {
		return browse.Browser{}, fmt.Errorf("failed to load records: %w", err)
	}

	return browse.New(records, opts...), nil
}
