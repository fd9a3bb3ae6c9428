package vault

import (
	"errors"
	"fmt"
)

// Sentinel errors for every failure the vault can surface. Callers match
// with errors.Is; the CLI maps them to short user-facing messages.
var (
	// ErrDuplicateUser indicates a registration attempt for an existing username.
	ErrDuplicateUser = errors.New("username already exists")

	// ErrUnknownUser indicates a login attempt for an absent username.
	ErrUnknownUser = errors.New("user not found")

	// ErrInvalidCredentials indicates a password that does not verify against
	// the stored hash.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNotAuthenticated indicates an operation that requires a logged-in
	// session was attempted without one.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrNoActiveChallenge indicates an OTP verification with no pending code.
	ErrNoActiveChallenge = errors.New("no active OTP found")

	// ErrInvalidOTP indicates the supplied code does not match the pending one.
	ErrInvalidOTP = errors.New("invalid OTP")

	// ErrNotFound indicates the record does not exist or is not visible to
	// the current session.
	ErrNotFound = errors.New("document not found")

	// ErrNotOwned indicates a delete attempt on another user's record.
	ErrNotOwned = errors.New("document not owned by current user")

	// ErrEncryptionFailure indicates the cipher failed while encrypting.
	ErrEncryptionFailure = errors.New("encryption failed")

	// ErrDecryptionFailure indicates corrupt ciphertext or a key mismatch.
	ErrDecryptionFailure = errors.New("decryption failed")

	// ErrStoreUnavailable wraps faults from the underlying persistent store.
	ErrStoreUnavailable = errors.New("storage unavailable")
)

// storeFault wraps a low-level storage error so it both matches
// ErrStoreUnavailable and preserves the original chain.
func storeFault(op string, err error) error {
	return fmt.Errorf("%s: %w", op, errors.Join(ErrStoreUnavailable, err))
}
