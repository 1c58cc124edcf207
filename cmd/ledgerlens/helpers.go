package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/ledgerlens/ledgerlens/internal/common"
	"github.com/ledgerlens/ledgerlens/internal/registry"
	"github.com/ledgerlens/ledgerlens/internal/service"
	"github.com/ledgerlens/ledgerlens/internal/storage"
)

// getDatabase opens the configured SQLite database, applying any pending
// migrations. The returned cleanup function closes it.
func getDatabase(ctx context.Context) (service.Storage, func(), error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".local", "share", "ledgerlens", "ledgerlens.db")
	}

	db, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	cleanup := func() {
		if err := db.Close(); err != nil {
			common.LogError(err, "failed to close database", nil)
		}
	}

	return db, cleanup, nil
}

// resolveStatementID expands a statement ID prefix to the full stored
// ID, erroring on no match or more than one.
func resolveStatementID(ctx context.Context, db service.Storage, idPrefix string) (string, error) {
	summaries, err := db.GetRecentStatements(ctx, 1000)
	if err != nil {
		return "", fmt.Errorf("failed to list statements: %w", err)
	}

	var resolved string
	for _, summary := range summaries {
		if !strings.HasPrefix(summary.ID, idPrefix) {
			continue
		}
		if resolved != "" {
			return "", fmt.Errorf("statement id %q is ambiguous", idPrefix)
		}
		resolved = summary.ID
	}
	if resolved == "" {
		return "", fmt.Errorf("no statement matches id %q", idPrefix)
	}
	return resolved, nil
}

// loadRegistry builds a registry seeded with the default rules and
// restores the persisted learned patterns into it.
func loadRegistry(ctx context.Context, db service.Storage) (*registry.Registry, error) {
	reg := registry.New()

	entries, err := db.GetLearnedPatterns(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load learned patterns: %w", err)
	}
	reg.Restore(entries)

	slog.Debug("loaded pattern registry", "learned", len(entries))
	return reg, nil
}

// saveRegistry writes every learned pattern back to the database.
func saveRegistry(ctx context.Context, db service.Storage, reg *registry.Registry) error {
	for _, entry := range reg.Learned() {
		e := entry
		if err := db.SaveLearnedPattern(ctx, &e); err != nil {
			return fmt.Errorf("failed to persist pattern %q: %w", entry.Pattern, err)
		}
	}
	return nil
}
