package vault

import (
	"context"

	"docvault/internal/model"
)

// SessionState is the observable state of the session machine.
//
// Transitions:
//
//	LoggedOut               --login success-->  AuthenticatedUnverified
//	AuthenticatedUnverified --otp verified-->   AuthenticatedVerified
//	any state               --logout-->         LoggedOut
//
// Login and OTP failures leave the state unchanged. The machine is cyclic;
// there is no terminal state.
type SessionState int

const (
	LoggedOut SessionState = iota
	AuthenticatedUnverified
	AuthenticatedVerified
)

func (s SessionState) String() string {
	switch s {
	case LoggedOut:
		return "logged out"
	case AuthenticatedUnverified:
		return "authenticated, awaiting OTP"
	case AuthenticatedVerified:
		return "authenticated, OTP verified"
	default:
		return "unknown"
	}
}

// StateOf maps a session snapshot onto the state machine. A snapshot with
// otpVerified set but authenticated unset is treated as logged out; the
// verified flag is meaningless on its own.
func StateOf(sess *model.Session) SessionState {
	if sess == nil || !sess.Authenticated || sess.Identity == "" {
		return LoggedOut
	}
	if sess.OTPVerified {
		return AuthenticatedVerified
	}
	return AuthenticatedUnverified
}

// loadSession restores the persisted snapshot. The stored flags are trusted
// verbatim; there is no re-authentication on restore. A missing snapshot is
// a logged-out session.
func (s *Service) loadSession(ctx context.Context) (*model.Session, error) {
	sess, err := s.store.LoadSession(ctx)
	if err != nil {
		return nil, storeFault("loading session", err)
	}
	if sess == nil {
		sess = &model.Session{}
	}
	return sess, nil
}

// saveSession persists the snapshot so a later invocation restores the
// same state.
func (s *Service) saveSession(ctx context.Context, sess *model.Session) error {
	if err := s.store.SaveSession(ctx, sess); err != nil {
		return storeFault("saving session", err)
	}
	return nil
}

// Status returns a copy of the current session snapshot. The pending code
// is blanked; callers that need a code go through Login or ResendOTP.
func (s *Service) Status(ctx context.Context) (*model.Session, error) {
	sess, err := s.loadSession(ctx)
	if err != nil {
		return nil, err
	}
	out := *sess
	out.PendingOTP = ""
	return &out, nil
}
