// Package vault implements the authentication and encrypted storage engine:
// credential registration and verification, the session state machine, the
// OTP gate, and the encrypt-on-write / decrypt-on-read document pipeline.
package vault

// Service is the orchestration layer that coordinates across all components
// to perform the high-level vault operations needed by the CLI.
type Service struct {
	store  Store
	blobs  BlobStore
	cipher Cipher
	logger Logger
	clock  Clock
	idgen  IDGenerator
	otps   OTPGenerator
}

// NewService creates a Service with the provided dependencies.
func NewService(store Store, blobs BlobStore, cipher Cipher, logger Logger, clock Clock, idgen IDGenerator, otps OTPGenerator) *Service {
	return &Service{
		store:  store,
		blobs:  blobs,
		cipher: cipher,
		logger: logger,
		clock:  clock,
		idgen:  idgen,
		otps:   otps,
	}
}
