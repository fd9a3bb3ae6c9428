package crypto_test

import (
	"bytes"
	"testing"

	"docvault/internal/crypto"
)

func TestNewSalt(t *testing.T) {
	t.Parallel()

	a, err := crypto.NewSalt()
	if err != nil {
		t.Fatalf("NewSalt() error = %v", err)
	}
	if len(a) != 16 {
		t.Errorf("NewSalt() length = %d, want 16", len(a))
	}

	b, err := crypto.NewSalt()
	if err != nil {
		t.Fatalf("NewSalt() error = %v", err)
	}
	if bytes.Equal(a, b) {
		t.Error("NewSalt() returned the same salt twice")
	}
}

func TestHashPassword(t *testing.T) {
	t.Parallel()

	salt := []byte("0123456789abcdef")

	t.Run("deterministic for the same inputs", func(t *testing.T) {
		a := crypto.HashPassword("secret1", salt)
		b := crypto.HashPassword("secret1", salt)
		if !bytes.Equal(a, b) {
			t.Error("HashPassword() is not deterministic")
		}
		if len(a) != 32 {
			t.Errorf("HashPassword() length = %d, want 32", len(a))
		}
	})

	t.Run("differs per password", func(t *testing.T) {
		a := crypto.HashPassword("secret1", salt)
		b := crypto.HashPassword("secret2", salt)
		if bytes.Equal(a, b) {
			t.Error("different passwords hashed to the same value")
		}
	})

	t.Run("differs per salt", func(t *testing.T) {
		a := crypto.HashPassword("secret1", salt)
		b := crypto.HashPassword("secret1", []byte("fedcba9876543210"))
		if bytes.Equal(a, b) {
			t.Error("different salts hashed to the same value")
		}
	})
}

func TestVerifyPassword(t *testing.T) {
	t.Parallel()

	salt, err := crypto.NewSalt()
	if err != nil {
		t.Fatalf("NewSalt() error = %v", err)
	}
	hash := crypto.HashPassword("secret1", salt)

	if !crypto.VerifyPassword("secret1", salt, hash) {
		t.Error("VerifyPassword() rejected the correct password")
	}
	if crypto.VerifyPassword("secret2", salt, hash) {
		t.Error("VerifyPassword() accepted a wrong password")
	}
	if crypto.VerifyPassword("secret1", []byte("0123456789abcdef"), hash) {
		t.Error("VerifyPassword() accepted a wrong salt")
	}
}

func TestDocumentKey(t *testing.T) {
	t.Parallel()

	a := crypto.DocumentKey("alice")
	if len(a) != 32 {
		t.Errorf("DocumentKey() length = %d, want 32", len(a))
	}
	if !bytes.Equal(a, crypto.DocumentKey("alice")) {
		t.Error("DocumentKey() is not deterministic")
	}
	if bytes.Equal(a, crypto.DocumentKey("bob")) {
		t.Error("DocumentKey() returned the same key for different owners")
	}
}
