package vault

import (
	"context"
	"fmt"

	"docvault/internal/crypto"
	"docvault/internal/model"
)

// Register creates a new credential for username. The password is hashed
// with PBKDF2 under a fresh random salt; the raw password is never stored.
// Registration does not log the user in.
func (s *Service) Register(ctx context.Context, username, password string) error {
	existing, err := s.store.FindCredential(ctx, username)
	if err != nil {
		return storeFault("checking for existing user", err)
	}
	if existing != nil {
		return ErrDuplicateUser
	}

	salt, err := crypto.NewSalt()
	if err != nil {
		return fmt.Errorf("generating salt: %w", err)
	}

	cred := &model.Credential{
		Username:     username,
		Salt:         salt,
		PasswordHash: crypto.HashPassword(password, salt),
		CreatedAt:    s.clock.Now(),
	}
	if err := s.store.CreateCredential(ctx, cred); err != nil {
		return storeFault("creating credential", err)
	}

	s.logger.Info("user registered", "username", username)
	return nil
}

// Login verifies the password against the stored credential and, on success,
// replaces the session with an authenticated-but-unverified one and issues a
// fresh OTP challenge. The issued code is returned so the caller can present
// it; a previous pending code, if any, is overwritten.
//
// On failure the session is left exactly as it was.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	cred, err := s.store.FindCredential(ctx, username)
	if err != nil {
		return "", storeFault("finding credential", err)
	}
	if cred == nil {
		return "", ErrUnknownUser
	}
	if !crypto.VerifyPassword(password, cred.Salt, cred.PasswordHash) {
		return "", ErrInvalidCredentials
	}

	code, err := s.otps.Generate()
	if err != nil {
		return "", fmt.Errorf("issuing OTP: %w", err)
	}

	sess := &model.Session{
		Identity:      username,
		Authenticated: true,
		OTPVerified:   false,
		PendingOTP:    code,
	}
	if err := s.saveSession(ctx, sess); err != nil {
		return "", err
	}

	s.logger.Info("user logged in", "username", username)
	return code, nil
}

// VerifyOTP checks the supplied code against the pending challenge. On
// success the code is consumed and the session transitions to verified.
// On mismatch the pending code stays in place and the state is unchanged.
func (s *Service) VerifyOTP(ctx context.Context, code string) error {
	sess, err := s.loadSession(ctx)
	if err != nil {
		return err
	}
	if err := s.consumeOTP(ctx, sess, code); err != nil {
		return err
	}
	s.logger.Info("OTP verified", "username", sess.Identity)
	return nil
}

// consumeOTP is the single gate implementation shared by VerifyOTP and
// Download. Exact string equality; one successful verification consumes the
// code and marks the session verified.
func (s *Service) consumeOTP(ctx context.Context, sess *model.Session, code string) error {
	if sess.PendingOTP == "" {
		return ErrNoActiveChallenge
	}
	if code != sess.PendingOTP {
		return ErrInvalidOTP
	}
	sess.PendingOTP = ""
	sess.OTPVerified = true
	return s.saveSession(ctx, sess)
}

// ResendOTP issues a fresh code for the logged-in identity, overwriting any
// pending one. The session drops back to unverified until the new code is
// consumed.
func (s *Service) ResendOTP(ctx context.Context) (string, error) {
	sess, err := s.loadSession(ctx)
	if err != nil {
		return "", err
	}
	if StateOf(sess) == LoggedOut {
		return "", ErrNotAuthenticated
	}

	code, err := s.otps.Generate()
	if err != nil {
		return "", fmt.Errorf("issuing OTP: %w", err)
	}
	sess.PendingOTP = code
	sess.OTPVerified = false
	if err := s.saveSession(ctx, sess); err != nil {
		return "", err
	}

	s.logger.Info("OTP reissued", "username", sess.Identity)
	return code, nil
}

// Logout clears the session from any state: identity, flags, and any
// pending OTP. Logging out while logged out is a no-op.
func (s *Service) Logout(ctx context.Context) error {
	if err := s.store.ClearSession(ctx); err != nil {
		return storeFault("clearing session", err)
	}
	s.logger.Info("user logged out")
	return nil
}
