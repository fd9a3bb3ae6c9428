// Package crypto implements password hashing and key derivation for the
// vault. All parameters are fixed constants shared between registration and
// verification: changing them invalidates every stored hash, so treat any
// change as a data migration, not a tuning knob.
package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// PBKDF2-SHA256 parameters.
	kdfIterations = 1000
	kdfKeyLen     = 32 // 256-bit derived key
	saltLen       = 16
)

// documentKeyLabel is the fixed salt for per-owner document keys. Document
// keys are derived from the owner name alone: anyone who knows the username
// can derive the key. This keeps one fixed key per user.
var documentKeyLabel = []byte("docvault/document-key/v1")

// NewSalt returns a fresh random per-credential salt.
func NewSalt() ([]byte, error) {
	b := make([]byte, saltLen)
	if _, err := rand.Read(b); err != nil {
		return nil, fmt.Errorf("reading random salt: %w", err)
	}
	return b, nil
}

// HashPassword derives the stored verifier for a password under the given salt.
func HashPassword(password string, salt []byte) []byte {
	return pbkdf2.Key([]byte(password), salt, kdfIterations, kdfKeyLen, sha256.New)
}

// VerifyPassword re-derives the hash under the stored salt and compares it
// against the expected value in constant time.
func VerifyPassword(password string, salt, expected []byte) bool {
	got := HashPassword(password, salt)
	return subtle.ConstantTimeCompare(got, expected) == 1
}

// DocumentKey returns the fixed symmetric key for an owner's documents.
func DocumentKey(owner string) []byte {
	return pbkdf2.Key([]byte(owner), documentKeyLabel, kdfIterations, kdfKeyLen, sha256.New)
}
