// Package store implements the metadata store backends.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"docvault/internal/config"
	"docvault/internal/store/migrations"
	"docvault/internal/vault"
)

// NewStoreFromConfig creates a Store implementation based on the database
// config type and brings its schema up to date.
func NewStoreFromConfig(cfg config.DatabaseConfig) (vault.Store, error) {
	switch cfg.Type {
	case "sqlite":
		if cfg.DataDir == "" {
			return nil, fmt.Errorf("data_dir required for sqlite database")
		}
		if err := os.MkdirAll(cfg.DataDir, 0700); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
		return openMigrated(filepath.Join(cfg.DataDir, "docvault.db"))
	case "memory":
		return openMigrated(":memory:")
	default:
		return nil, fmt.Errorf("unknown database type: %s", cfg.Type)
	}
}

func openMigrated(path string) (*SQLiteStore, error) {
	s, err := NewSQLiteStore(path)
	if err != nil {
		return nil, err
	}
	if err := migrations.MigrateUp(s.db); err != nil {
		s.Close()
		return nil, fmt.Errorf("migrating database: %w", err)
	}
	return s, nil
}
