package blob

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	"docvault/internal/vault"
)

// MemoryStore is an in-memory implementation of the BlobStore interface,
// useful for testing. Safe for concurrent use.
type MemoryStore struct {
	blobs map[string][]byte
	mu    sync.RWMutex
}

var _ vault.BlobStore = (*MemoryStore)(nil)

// NewMemoryStore creates a new in-memory blob store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string][]byte)}
}

// Put stores a blob under the given key, overwriting any previous value.
func (m *MemoryStore) Put(_ context.Context, key string, r io.Reader, size int64) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read blob: %w", err)
	}
	if int64(len(data)) != size {
		return fmt.Errorf("size mismatch: expected %d bytes, got %d", size, len(data))
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[key] = data
	return nil
}

// Get retrieves a blob by key.
func (m *MemoryStore) Get(_ context.Context, key string, w io.Writer) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.blobs[key]
	if !ok {
		return fmt.Errorf("blob not found: %s", key)
	}
	if _, err := io.Copy(w, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write blob: %w", err)
	}
	return nil
}

// Delete removes a blob by key. Absent keys are a no-op.
func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.blobs, key)
	return nil
}

// Validate always succeeds for the in-memory store.
func (m *MemoryStore) Validate(context.Context) error {
	return nil
}
