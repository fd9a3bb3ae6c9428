package model

import "time"

// Credential is a stored login credential for one user.
// The password itself is never stored, only the PBKDF2 hash and the
// per-user salt it was derived with.
type Credential struct {
	Username     string // Unique, case-sensitive
	Salt         []byte // Random, generated at registration, immutable
	PasswordHash []byte // PBKDF2(password, salt)
	CreatedAt    time.Time
}

// Record is the metadata for one encrypted document. The ciphertext itself
// lives in the blob store under the record ID; everything here is stored
// in the clear.
type Record struct {
	ID         string // UUID
	Owner      string // Username that uploaded the document
	FileName   string
	MimeType   string
	SizeBytes  int64 // Plaintext size, not ciphertext size
	UploadedAt time.Time
}

// Session is the persisted session snapshot. The zero value means logged out.
//
// PendingOTP is the one active, unconsumed passcode. It has to survive
// between CLI invocations, so it is persisted next to the flags it gates.
type Session struct {
	Identity      string
	Authenticated bool
	OTPVerified   bool
	PendingOTP    string
}
