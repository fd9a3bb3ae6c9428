package store_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"docvault/internal/config"
	"docvault/internal/store"
)

func TestNewStoreFromConfig(t *testing.T) {
	ctx := context.Background()

	t.Run("memory", func(t *testing.T) {
		t.Parallel()
		st, err := store.NewStoreFromConfig(config.DatabaseConfig{Type: "memory"})
		if err != nil {
			t.Fatalf("NewStoreFromConfig() error = %v", err)
		}
		defer st.Close()

		// Migrations ran: the schema is queryable.
		if _, err := st.FindCredential(ctx, "anyone"); err != nil {
			t.Errorf("FindCredential() on fresh store error = %v", err)
		}
	})

	t.Run("sqlite creates the data dir and db file", func(t *testing.T) {
		t.Parallel()
		dataDir := filepath.Join(t.TempDir(), "db")

		st, err := store.NewStoreFromConfig(config.DatabaseConfig{
			Type:    "sqlite",
			DataDir: dataDir,
		})
		if err != nil {
			t.Fatalf("NewStoreFromConfig() error = %v", err)
		}
		defer st.Close()

		if _, err := st.FindCredential(ctx, "anyone"); err != nil {
			t.Errorf("FindCredential() on fresh store error = %v", err)
		}
		if _, err := os.Stat(filepath.Join(dataDir, "docvault.db")); err != nil {
			t.Errorf("database file not created: %v", err)
		}
	})

	t.Run("sqlite without data_dir", func(t *testing.T) {
		t.Parallel()
		if _, err := store.NewStoreFromConfig(config.DatabaseConfig{Type: "sqlite"}); err == nil {
			t.Error("NewStoreFromConfig() without data_dir succeeded")
		}
	})

	t.Run("unknown type", func(t *testing.T) {
		t.Parallel()
		if _, err := store.NewStoreFromConfig(config.DatabaseConfig{Type: "oracle"}); err == nil {
			t.Error("NewStoreFromConfig() with unknown type succeeded")
		}
	})
}
