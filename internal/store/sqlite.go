package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"docvault/internal/model"
	"docvault/internal/vault"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteStore implements the vault.Store interface using SQLite.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

var _ vault.Store = (*SQLiteStore)(nil)

// NewSQLiteStore creates a new SQLite store.
// path can be a file path or ":memory:" for an in-memory database.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := OpenConnection(path)
	if err != nil {
		return nil, err
	}

	return &SQLiteStore{db: db, path: path}, nil
}

// NewSQLiteStoreFromDB wraps an existing database connection.
// The caller is responsible for ensuring the connection is properly configured.
func NewSQLiteStoreFromDB(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// OpenConnection opens and configures a SQLite database connection with
// appropriate PRAGMAs. Exported for tests that need a raw configured
// connection. path can be a file path or ":memory:".
func OpenConnection(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign key constraints (SQLite default is OFF for backward compatibility)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return db, nil
}

// Credential operations

func (s *SQLiteStore) CreateCredential(ctx context.Context, c *model.Credential) error {
	query := `INSERT INTO credentials (username, salt, password_hash, created_at)
	          VALUES (?, ?, ?, ?)`
	if _, err := s.db.ExecContext(ctx, query, c.Username, c.Salt, c.PasswordHash, c.CreatedAt); err != nil {
		return fmt.Errorf("inserting credential: %w", err)
	}
	return nil
}

func (s *SQLiteStore) FindCredential(ctx context.Context, username string) (*model.Credential, error) {
	query := `SELECT username, salt, password_hash, created_at
	          FROM credentials WHERE username = ?`
	row := s.db.QueryRowContext(ctx, query, username)

	c := &model.Credential{}
	err := row.Scan(&c.Username, &c.Salt, &c.PasswordHash, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("finding credential: %w", err)
	}
	return c, nil
}

// Record operations

func (s *SQLiteStore) CreateRecord(ctx context.Context, r *model.Record) error {
	query := `INSERT INTO records (id, owner, file_name, mime_type, size_bytes, uploaded_at)
	          VALUES (?, ?, ?, ?, ?, ?)`
	if _, err := s.db.ExecContext(ctx, query, r.ID, r.Owner, r.FileName, r.MimeType, r.SizeBytes, r.UploadedAt); err != nil {
		return fmt.Errorf("inserting record: %w", err)
	}
	return nil
}

func (s *SQLiteStore) FindRecord(ctx context.Context, id string) (*model.Record, error) {
	query := `SELECT id, owner, file_name, mime_type, size_bytes, uploaded_at
	          FROM records WHERE id = ?`
	row := s.db.QueryRowContext(ctx, query, id)

	r := &model.Record{}
	err := row.Scan(&r.ID, &r.Owner, &r.FileName, &r.MimeType, &r.SizeBytes, &r.UploadedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("finding record: %w", err)
	}
	return r, nil
}

func (s *SQLiteStore) FindRecordsByOwner(ctx context.Context, owner string) ([]*model.Record, error) {
	query := `SELECT id, owner, file_name, mime_type, size_bytes, uploaded_at
	          FROM records WHERE owner = ? ORDER BY rowid`
	rows, err := s.db.QueryContext(ctx, query, owner)
	if err != nil {
		return nil, fmt.Errorf("listing records: %w", err)
	}
	defer rows.Close()

	var result []*model.Record
	for rows.Next() {
		r := &model.Record{}
		if err := rows.Scan(&r.ID, &r.Owner, &r.FileName, &r.MimeType, &r.SizeBytes, &r.UploadedAt); err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		result = append(result, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating records: %w", err)
	}

	return result, nil
}

func (s *SQLiteStore) DeleteRecord(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM records WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting record: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if affected != 1 {
		return fmt.Errorf("record not found: %s", id)
	}
	return nil
}

// Session operations

func (s *SQLiteStore) LoadSession(ctx context.Context) (*model.Session, error) {
	query := `SELECT identity, authenticated, otp_verified, pending_otp
	          FROM session WHERE id = 1`
	row := s.db.QueryRowContext(ctx, query)

	sess := &model.Session{}
	err := row.Scan(&sess.Identity, &sess.Authenticated, &sess.OTPVerified, &sess.PendingOTP)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // No snapshot
		}
		return nil, fmt.Errorf("loading session: %w", err)
	}
	return sess, nil
}

func (s *SQLiteStore) SaveSession(ctx context.Context, sess *model.Session) error {
	query := `INSERT INTO session (id, identity, authenticated, otp_verified, pending_otp)
	          VALUES (1, ?, ?, ?, ?)
	          ON CONFLICT(id) DO UPDATE SET
	              identity = excluded.identity,
	              authenticated = excluded.authenticated,
	              otp_verified = excluded.otp_verified,
	              pending_otp = excluded.pending_otp`
	if _, err := s.db.ExecContext(ctx, query, sess.Identity, sess.Authenticated, sess.OTPVerified, sess.PendingOTP); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	return nil
}

func (s *SQLiteStore) ClearSession(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM session WHERE id = 1`); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
