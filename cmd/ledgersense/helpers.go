package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledgersense/ledgersense/internal/anomaly"
	"github.com/ledgersense/ledgersense/internal/classify"
	"github.com/ledgersense/ledgersense/internal/config"
	"github.com/ledgersense/ledgersense/internal/engine"
	"github.com/ledgersense/ledgersense/internal/storage"
)

// expandPath expands a leading ~ and environment variables in a path.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}
	return os.ExpandEnv(path)
}

// initStorage opens the configured database and applies migrations.
func initStorage(ctx context.Context, settings *config.Settings) (*storage.SQLiteStorage, error) {
	store, err := storage.NewSQLiteStorage(expandPath(settings.DatabasePath))
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// buildEngine assembles the full pipeline: storage, classifier with the
// persisted lexicon restored, and the anomaly scorer. The caller owns
// the returned storage and must Close it.
func buildEngine(ctx context.Context) (*engine.Engine, *storage.SQLiteStorage, error) {
	settings, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	store, err := initStorage(ctx, settings)
	if err != nil {
		return nil, nil, err
	}

	classifier := classify.New(settings.Classifier)
	scorer := anomaly.NewScorer(settings.Anomaly)

	e := engine.NewWithConfig(store, classifier, scorer, engine.Config{
		HistoryWindow: settings.HistoryWindow,
		MinHistory:    settings.Anomaly.MinHistory,
	})

	if err := e.RestoreLexicon(ctx); err != nil {
		store.Close()
		return nil, nil, err
	}

	return e, store, nil
}
