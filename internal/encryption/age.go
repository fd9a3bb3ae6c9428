package encryption

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"

	"filippo.io/age"

	"docvault/internal/vault"
)

// ageWorkFactor is the scrypt cost (log2 N) used when sealing. The key fed
// to the cipher is already a full-entropy derived key, so the interactive
// default would only add latency.
const ageWorkFactor = 12

// AgeCipher implements vault.Cipher using filippo.io/age in scrypt
// passphrase mode, with the hex-encoded document key as the passphrase.
// The age header and chunked STREAM payload make the output self-describing
// at the cost of a larger ciphertext than AES-GCM.
type AgeCipher struct{}

var _ vault.Cipher = (*AgeCipher)(nil)

// NewAgeCipher creates a new age-based cipher.
func NewAgeCipher() *AgeCipher { return &AgeCipher{} }

// Encrypt seals plaintext under key.
func (*AgeCipher) Encrypt(key, plaintext []byte) ([]byte, error) {
	recipient, err := age.NewScryptRecipient(hex.EncodeToString(key))
	if err != nil {
		return nil, fmt.Errorf("creating scrypt recipient: %w", err)
	}
	recipient.SetWorkFactor(ageWorkFactor)

	var buf bytes.Buffer
	w, err := age.Encrypt(&buf, recipient)
	if err != nil {
		return nil, fmt.Errorf("creating encrypted writer: %w", err)
	}
	if _, err := w.Write(plaintext); err != nil {
		return nil, fmt.Errorf("encrypting data: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("finalizing encryption: %w", err)
	}
	return buf.Bytes(), nil
}

// Decrypt opens ciphertext produced by Encrypt. Fails on a wrong key or
// any tampering.
func (*AgeCipher) Decrypt(key, ciphertext []byte) ([]byte, error) {
	identity, err := age.NewScryptIdentity(hex.EncodeToString(key))
	if err != nil {
		return nil, fmt.Errorf("creating scrypt identity: %w", err)
	}

	r, err := age.Decrypt(bytes.NewReader(ciphertext), identity)
	if err != nil {
		return nil, fmt.Errorf("creating decrypted reader: %w", err)
	}
	plaintext, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("decrypting data: %w", err)
	}
	return plaintext, nil
}
