// Package encryption provides the cipher backends for document content.
package encryption

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"

	"docvault/internal/vault"
)

// AESGCMCipher implements vault.Cipher using AES-256-GCM. A fresh random
// nonce is generated per encryption and prepended to the ciphertext.
type AESGCMCipher struct{}

var _ vault.Cipher = (*AESGCMCipher)(nil)

// NewAESGCMCipher creates a new AES-GCM cipher.
func NewAESGCMCipher() *AESGCMCipher { return &AESGCMCipher{} }

func (*AESGCMCipher) aead(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("creating cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("creating GCM: %w", err)
	}
	return aead, nil
}

// Encrypt seals plaintext under key. The key must be 16, 24, or 32 bytes.
func (c *AESGCMCipher) Encrypt(key, plaintext []byte) ([]byte, error) {
	aead, err := c.aead(key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("generating nonce: %w", err)
	}

	out := make([]byte, 0, len(nonce)+len(plaintext)+aead.Overhead())
	out = append(out, nonce...)
	out = append(out, aead.Seal(nil, nonce, plaintext, nil)...)
	return out, nil
}

// Decrypt opens ciphertext produced by Encrypt. Fails on a wrong key or
// any tampering.
func (c *AESGCMCipher) Decrypt(key, ciphertext []byte) ([]byte, error) {
	aead, err := c.aead(key)
	if err != nil {
		return nil, err
	}
	if len(ciphertext) < aead.NonceSize() {
		return nil, errors.New("ciphertext shorter than nonce")
	}

	nonce := ciphertext[:aead.NonceSize()]
	ct := ciphertext[aead.NonceSize():]
	plaintext, err := aead.Open(nil, nonce, ct, nil)
	if err != nil {
		return nil, fmt.Errorf("opening ciphertext: %w", err)
	}
	return plaintext, nil
}
