package vault

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// OTPGenerator produces one-time passcodes. Abstracted so tests can issue
// known codes.
type OTPGenerator interface {
	Generate() (string, error)
}

// otpSpan is the size of the 6-digit code space: codes are uniform over
// [100000, 999999] inclusive.
const (
	otpMin  = 100000
	otpSpan = 900000
)

// RandomOTPGenerator produces uniformly random 6-digit codes from
// crypto/rand.
type RandomOTPGenerator struct{}

func (RandomOTPGenerator) Generate() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(otpSpan))
	if err != nil {
		return "", fmt.Errorf("generating OTP: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+otpMin), nil
}
