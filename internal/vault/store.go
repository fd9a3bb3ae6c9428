package vault

import (
	"context"
	"io"

	"docvault/internal/model"
)

// Store provides an interface for metadata persistence: the credential
// table, the document record collection with its owner index, and the
// session snapshot. Each method is an atomic unit.
type Store interface {
	// Credential operations

	// CreateCredential inserts a new credential. Fails if the username exists.
	CreateCredential(ctx context.Context, c *model.Credential) error

	// FindCredential returns the credential for a username, or nil if absent.
	FindCredential(ctx context.Context, username string) (*model.Credential, error)

	// Record operations

	// CreateRecord inserts a new document record.
	CreateRecord(ctx context.Context, r *model.Record) error

	// FindRecord returns a record by ID, or nil if absent.
	FindRecord(ctx context.Context, id string) (*model.Record, error)

	// FindRecordsByOwner returns all records owned by the given username,
	// in insertion order.
	FindRecordsByOwner(ctx context.Context, owner string) ([]*model.Record, error)

	// DeleteRecord removes a record by ID. Deleting an absent ID is an error.
	DeleteRecord(ctx context.Context, id string) error

	// Session operations

	// LoadSession returns the persisted session snapshot, or nil if none.
	LoadSession(ctx context.Context) (*model.Session, error)

	// SaveSession replaces the persisted session snapshot.
	SaveSession(ctx context.Context, s *model.Session) error

	// ClearSession removes the persisted session snapshot.
	ClearSession(ctx context.Context) error

	// Close closes the underlying database.
	Close() error
}

// BlobStore provides an interface for ciphertext storage backends.
// Operations stream through io.Reader/io.Writer so large documents do not
// have to be buffered twice.
type BlobStore interface {
	// Put stores a blob under the given key. size is the number of bytes
	// that will be read from r. Storing the same key twice overwrites.
	Put(ctx context.Context, key string, r io.Reader, size int64) error

	// Get retrieves a blob by key and writes it to w.
	Get(ctx context.Context, key string, w io.Writer) error

	// Delete removes a blob by key. Deleting an absent key is a no-op.
	Delete(ctx context.Context, key string) error

	// Validate verifies the backend is accessible and properly configured.
	Validate(ctx context.Context) error
}
