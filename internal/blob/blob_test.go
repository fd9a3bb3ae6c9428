package blob_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"docvault/internal/blob"
	"docvault/internal/config"
	"docvault/internal/vault"
)

// stores returns a fresh instance of every locally testable backend.
func stores(t *testing.T) map[string]vault.BlobStore {
	t.Helper()

	fsStore, err := blob.NewFilesystemStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFilesystemStore() error = %v", err)
	}
	return map[string]vault.BlobStore{
		"memory":     blob.NewMemoryStore(),
		"filesystem": fsStore,
	}
}

func TestBlobStore_PutGet(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	for name, st := range stores(t) {
		st := st
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			payload := []byte("ciphertext bytes")

			err := st.Put(ctx, "key-1", bytes.NewReader(payload), int64(len(payload)))
			if err != nil {
				t.Fatalf("Put() error = %v", err)
			}

			var buf bytes.Buffer
			if err := st.Get(ctx, "key-1", &buf); err != nil {
				t.Fatalf("Get() error = %v", err)
			}
			if !bytes.Equal(buf.Bytes(), payload) {
				t.Errorf("Get() = %q, want %q", buf.Bytes(), payload)
			}
		})
	}
}

func TestBlobStore_Overwrite(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	for name, st := range stores(t) {
		st := st
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			if err := st.Put(ctx, "key-1", strings.NewReader("old"), 3); err != nil {
				t.Fatalf("first Put() error = %v", err)
			}
			if err := st.Put(ctx, "key-1", strings.NewReader("newer"), 5); err != nil {
				t.Fatalf("second Put() error = %v", err)
			}

			var buf bytes.Buffer
			if err := st.Get(ctx, "key-1", &buf); err != nil {
				t.Fatalf("Get() error = %v", err)
			}
			if buf.String() != "newer" {
				t.Errorf("Get() = %q, want %q", buf.String(), "newer")
			}
		})
	}
}

func TestBlobStore_SizeMismatch(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	for name, st := range stores(t) {
		st := st
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			err := st.Put(ctx, "key-1", strings.NewReader("short"), 100)
			if err == nil {
				t.Fatal("Put() with a wrong size succeeded")
			}

			var buf bytes.Buffer
			if err := st.Get(ctx, "key-1", &buf); err == nil {
				t.Error("Get() found a blob from a failed Put()")
			}
		})
	}
}

func TestBlobStore_GetMissing(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	for name, st := range stores(t) {
		st := st
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			if err := st.Get(ctx, "absent", &buf); err == nil {
				t.Error("Get() of a missing key succeeded")
			}
		})
	}
}

func TestBlobStore_Delete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	for name, st := range stores(t) {
		st := st
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			if err := st.Put(ctx, "key-1", strings.NewReader("data"), 4); err != nil {
				t.Fatalf("Put() error = %v", err)
			}

			if err := st.Delete(ctx, "key-1"); err != nil {
				t.Fatalf("Delete() error = %v", err)
			}
			var buf bytes.Buffer
			if err := st.Get(ctx, "key-1", &buf); err == nil {
				t.Error("Get() after Delete() succeeded")
			}

			// Deleting an absent key is a no-op.
			if err := st.Delete(ctx, "key-1"); err != nil {
				t.Errorf("repeat Delete() error = %v", err)
			}
		})
	}
}

func TestBlobStore_Validate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	for name, st := range stores(t) {
		st := st
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			if err := st.Validate(ctx); err != nil {
				t.Errorf("Validate() error = %v", err)
			}
		})
	}
}

func TestNewStoreFromConfig(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("memory", func(t *testing.T) {
		t.Parallel()
		st, err := blob.NewStoreFromConfig(ctx, config.BlobConfig{Type: "memory"})
		if err != nil {
			t.Fatalf("NewStoreFromConfig() error = %v", err)
		}
		if _, ok := st.(*blob.MemoryStore); !ok {
			t.Errorf("NewStoreFromConfig() = %T, want *MemoryStore", st)
		}
	})

	t.Run("filesystem", func(t *testing.T) {
		t.Parallel()
		st, err := blob.NewStoreFromConfig(ctx, config.BlobConfig{
			Type: "filesystem",
			Root: t.TempDir(),
		})
		if err != nil {
			t.Fatalf("NewStoreFromConfig() error = %v", err)
		}
		if _, ok := st.(*blob.FilesystemStore); !ok {
			t.Errorf("NewStoreFromConfig() = %T, want *FilesystemStore", st)
		}
	})

	t.Run("unknown type", func(t *testing.T) {
		t.Parallel()
		if _, err := blob.NewStoreFromConfig(ctx, config.BlobConfig{Type: "tape"}); err == nil {
			t.Error("NewStoreFromConfig() with unknown type succeeded")
		}
	})
}
