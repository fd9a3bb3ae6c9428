// Package testutil provides shared fakes and wiring helpers for tests.
package testutil

import (
	"testing"

	"docvault/internal/blob"
	"docvault/internal/encryption"
	"docvault/internal/store"
	"docvault/internal/store/migrations"
	"docvault/internal/vault"
)

// NewTestStore creates a new in-memory SQLite store with schema applied.
// The store is automatically closed when the test completes.
func NewTestStore(t *testing.T) vault.Store {
	t.Helper()

	sqlDB, err := store.OpenConnection(":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}

	if err := migrations.MigrateUp(sqlDB); err != nil {
		sqlDB.Close()
		t.Fatalf("failed to apply migrations: %v", err)
	}

	st := store.NewSQLiteStoreFromDB(sqlDB)
	t.Cleanup(func() {
		st.Close()
	})

	return st
}

// NewTestService wires a Service over an in-memory store, an in-memory blob
// store, the AES-GCM cipher, a fixed clock, sequential IDs, and sequential
// OTP codes.
func NewTestService(t *testing.T) *vault.Service {
	t.Helper()

	return vault.NewService(
		NewTestStore(t),
		blob.NewMemoryStore(),
		encryption.NewAESGCMCipher(),
		vault.NewNopLogger(),
		FixedClock(),
		NewStubIDGenerator(),
		NewStubOTPGenerator(),
	)
}
