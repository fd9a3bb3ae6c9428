package encryption

import (
	"fmt"

	"docvault/internal/config"
	"docvault/internal/vault"
)

// NewCipherFromConfig creates a Cipher based on the configuration type.
func NewCipherFromConfig(cfg config.EncryptionConfig) (vault.Cipher, error) {
	switch cfg.Type {
	case "aes-gcm", "":
		return NewAESGCMCipher(), nil
	case "age":
		return NewAgeCipher(), nil
	default:
		return nil, fmt.Errorf("unknown encryption type: %q", cfg.Type)
	}
}
