package vault_test

import (
	"strconv"
	"testing"

	"docvault/internal/vault"
)

func TestRandomOTPGenerator(t *testing.T) {
	t.Parallel()

	gen := vault.RandomOTPGenerator{}
	for i := 0; i < 200; i++ {
		code, err := gen.Generate()
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
		if len(code) != 6 {
			t.Fatalf("Generate() = %q, want 6 digits", code)
		}
		n, err := strconv.Atoi(code)
		if err != nil {
			t.Fatalf("Generate() = %q, not numeric: %v", code, err)
		}
		if n < 100000 || n > 999999 {
			t.Fatalf("Generate() = %d, want within [100000, 999999]", n)
		}
	}
}
