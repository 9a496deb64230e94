package security_test

import (
	"testing"

	"github.com/strettonotes/strettonotes/internal/security"
)

func TestHashAndCheck(t *testing.T) {
	h := security.NewHasher(4) // min cost to keep the test fast

	hash, err := h.Hash("secret1")

	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}

	if hash == "secret1" || hash == "" {
		t.Fatalf("hash must not be empty or equal to the plaintext, got %q", hash)
	}

	if !h.Check(hash, "secret1") {
		t.Fatalf("expected correct password to verify")
	}

	if h.Check(hash, "secret2") {
		t.Fatalf("expected wrong password to fail verification")
	}
}

func TestCheckMalformedHash(t *testing.T) {
	h := security.NewHasher(4)

	tests := []struct {
		name string
		hash string
	}{
		{"empty", ""},
		{"garbage", "not-a-bcrypt-digest"},
		{"truncated", "$2a$10$abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if h.Check(tt.hash, "whatever") {
				t.Fatalf("malformed hash %q must never verify", tt.hash)
			}
		})
	}
}

func TestHashesAreSalted(t *testing.T) {
	h := security.NewHasher(4)

	h1, err := h.Hash("same-password")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}

	h2, err := h.Hash("same-password")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}

	if h1 == h2 {
		t.Fatalf("two hashes of the same password must differ (salt)")
	}
}

func TestOutOfRangeCostFallsBack(t *testing.T) {
	h := security.NewHasher(99)

	hash, err := h.Hash("pw")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}

	if !h.Check(hash, "pw") {
		t.Fatalf("expected hash produced with fallback cost to verify")
	}
}
