package vault

// Cipher is a symmetric cipher over whole documents. Implementations must
// fail Decrypt on a wrong key or tampered ciphertext rather than return
// garbage plaintext.
type Cipher interface {
	Encrypt(key, plaintext []byte) ([]byte, error)
	Decrypt(key, ciphertext []byte) ([]byte, error)
}
