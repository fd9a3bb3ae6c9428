// Package blob implements the ciphertext storage backends.
package blob

import (
	"context"
	"fmt"

	"docvault/internal/config"
	"docvault/internal/vault"
)

// NewStoreFromConfig creates a BlobStore implementation based on the blob
// config type.
func NewStoreFromConfig(ctx context.Context, cfg config.BlobConfig) (vault.BlobStore, error) {
	switch cfg.Type {
	case "filesystem":
		if cfg.Root == "" {
			return nil, fmt.Errorf("filesystem blob store requires root to be set")
		}
		return NewFilesystemStore(cfg.Root)
	case "memory":
		return NewMemoryStore(), nil
	case "s3":
		return NewS3Store(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown blob store type: %s", cfg.Type)
	}
}
