package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"docvault/internal/vault"
)

// FilesystemStore is a filesystem-based implementation of the BlobStore
// interface. Each blob is one file under the root directory, named by key.
// Writes go through a temp file and rename so a crash mid-write never
// leaves a partial blob under its final name.
type FilesystemStore struct {
	root string
}

var _ vault.BlobStore = (*FilesystemStore)(nil)

// NewFilesystemStore creates a new filesystem blob store rooted at the
// given path.
func NewFilesystemStore(root string) (*FilesystemStore, error) {
	if err := os.MkdirAll(root, 0700); err != nil {
		return nil, fmt.Errorf("failed to create blob directory: %w", err)
	}
	return &FilesystemStore{root: root}, nil
}

func (v *FilesystemStore) blobPath(key string) string {
	return filepath.Join(v.root, key)
}

// Put stores a blob under the given key, overwriting any previous value.
func (v *FilesystemStore) Put(_ context.Context, key string, r io.Reader, size int64) error {
	destPath := v.blobPath(key)

	tmp, err := os.CreateTemp(v.root, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	written, err := io.Copy(tmp, r)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write blob: %w", err)
	}
	if written != size {
		os.Remove(tmpPath)
		return fmt.Errorf("size mismatch: expected %d bytes, got %d", size, written)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to move blob into place: %w", err)
	}
	return nil
}

// Get retrieves a blob by key and writes it to w.
func (v *FilesystemStore) Get(_ context.Context, key string, w io.Writer) error {
	f, err := os.Open(v.blobPath(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("blob not found: %s", key)
		}
		return fmt.Errorf("failed to open blob: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("failed to read blob: %w", err)
	}
	return nil
}

// Delete removes a blob by key. Absent keys are a no-op.
func (v *FilesystemStore) Delete(_ context.Context, key string) error {
	if err := os.Remove(v.blobPath(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete blob: %w", err)
	}
	return nil
}

// Validate verifies the root directory exists and is writable.
func (v *FilesystemStore) Validate(context.Context) error {
	info, err := os.Stat(v.root)
	if err != nil {
		return fmt.Errorf("blob root not accessible: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("blob root is not a directory: %s", v.root)
	}

	probe, err := os.CreateTemp(v.root, ".probe-*")
	if err != nil {
		return fmt.Errorf("blob root not writable: %w", err)
	}
	probe.Close()
	os.Remove(probe.Name())
	return nil
}
