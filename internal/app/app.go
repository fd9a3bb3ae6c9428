// Package app is the application layer between the CLI and the vault
// service. It constructs all dependencies from config, exposes high-level
// operations that accept raw user input, and manages resource lifecycles.
package app

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"time"

	"docvault/internal/blob"
	"docvault/internal/config"
	"docvault/internal/encryption"
	"docvault/internal/fs"
	"docvault/internal/model"
	"docvault/internal/store"
	"docvault/internal/vault"
)

// minUsernameLen is the shortest username accepted at registration.
const minUsernameLen = 4

// App wires config into a ready-to-use vault service.
type App struct {
	cfg     *config.Config
	store   vault.Store
	blobs   vault.BlobStore
	service *vault.Service
	logFile *os.File
}

// NewApp creates a fully wired App from the given config.
// operation identifies the CLI command being run (e.g. "Login", "Upload").
// The caller must call Close when done.
func NewApp(ctx context.Context, cfg *config.Config, operation string) (*App, error) {
	st, err := store.NewStoreFromConfig(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("creating store: %w", err)
	}

	blobs, err := blob.NewStoreFromConfig(ctx, cfg.Blobs)
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("creating blob store: %w", err)
	}

	cipher, err := encryption.NewCipherFromConfig(cfg.Encryption)
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("creating cipher: %w", err)
	}

	opID := time.Now().UTC().Format("20060102T150405Z")
	logger, logFile, err := newLogger(cfg.LogDir, opID)
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	svc := vault.NewService(
		st,
		blobs,
		cipher,
		&slogAdapter{l: logger.With("op", operation)},
		vault.RealClock{},
		vault.UUIDGenerator{},
		vault.RandomOTPGenerator{},
	)

	return &App{
		cfg:     cfg,
		store:   st,
		blobs:   blobs,
		service: svc,
		logFile: logFile,
	}, nil
}

// Register validates the raw input and creates a new credential.
// Usernames are case-sensitive and at least four characters.
func (a *App) Register(ctx context.Context, username, password string) error {
	if len(username) < minUsernameLen {
		return fmt.Errorf("username must be at least %d characters", minUsernameLen)
	}
	if password == "" {
		return fmt.Errorf("password must not be empty")
	}
	return a.service.Register(ctx, username, password)
}

// Login authenticates and returns the issued OTP code.
func (a *App) Login(ctx context.Context, username, password string) (string, error) {
	return a.service.Login(ctx, username, password)
}

// VerifyOTP consumes the pending challenge.
func (a *App) VerifyOTP(ctx context.Context, code string) error {
	return a.service.VerifyOTP(ctx, code)
}

// ResendOTP issues a fresh code for the logged-in identity.
func (a *App) ResendOTP(ctx context.Context) (string, error) {
	return a.service.ResendOTP(ctx)
}

// Logout clears the session.
func (a *App) Logout(ctx context.Context) error {
	return a.service.Logout(ctx)
}

// Status returns the current session snapshot.
func (a *App) Status(ctx context.Context) (*model.Session, error) {
	return a.service.Status(ctx)
}

// Upload resolves the given path, reads the file, and stores it encrypted.
// The MIME type is derived from the file extension.
func (a *App) Upload(ctx context.Context, rawPath string) (string, error) {
	f, err := fs.Resolve(rawPath)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	data, err := f.Read()
	if err != nil {
		return "", err
	}

	mimeType := mime.TypeByExtension(filepath.Ext(f.Name()))
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	return a.service.Upload(ctx, f.Name(), mimeType, data)
}

// List returns the current user's document metadata.
func (a *App) List(ctx context.Context) ([]*model.Record, error) {
	return a.service.List(ctx)
}

// Download fetches and decrypts a record, writing the plaintext to outPath.
// An empty outPath defaults to the stored file name in the working
// directory. Returns the path written.
func (a *App) Download(ctx context.Context, recordID, code, outPath string) (string, error) {
	rec, data, err := a.service.Download(ctx, recordID, code)
	if err != nil {
		return "", err
	}

	if outPath == "" {
		outPath = rec.FileName
	}
	if err := os.WriteFile(outPath, data, 0600); err != nil {
		return "", fmt.Errorf("writing downloaded file: %w", err)
	}
	return outPath, nil
}

// Delete removes a record and its ciphertext.
func (a *App) Delete(ctx context.Context, recordID string) error {
	return a.service.Delete(ctx, recordID)
}

// Validate checks that the configured blob backend is reachable.
func (a *App) Validate(ctx context.Context) error {
	return a.blobs.Validate(ctx)
}

// Close releases the store and the log file.
func (a *App) Close() error {
	var firstErr error
	if err := a.store.Close(); err != nil {
		firstErr = fmt.Errorf("closing store: %w", err)
	}
	if a.logFile != nil {
		a.logFile.Close()
	}
	return firstErr
}
