package password

import (
	"strings"
	"testing"
)

func TestHashAndVerify(t *testing.T) {
	h := New(4) // minimum cost keeps the test fast

	hash, err := h.Hash("correct horse")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if !strings.HasPrefix(hash, "$2") {
		t.Fatalf("expected bcrypt prefix, got %q", hash)
	}

	if !h.Verify("correct horse", hash) {
		t.Fatal("round-trip verification failed")
	}
	if h.Verify("wrong", hash) {
		t.Fatal("wrong password verified")
	}
}

func TestHashesAreSalted(t *testing.T) {
	h := New(4)

	a, err := h.Hash("same input")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	b, err := h.Hash("same input")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if a == b {
		t.Fatal("two hashes of the same input must differ")
	}
}

func TestCostClamping(t *testing.T) {
	if got := New(0).Cost(); got != DefaultCost {
		t.Fatalf("zero cost: expected %d, got %d", DefaultCost, got)
	}
	if got := New(99).Cost(); got != DefaultCost {
		t.Fatalf("oversized cost: expected %d, got %d", DefaultCost, got)
	}
	if got := New(10).Cost(); got != 10 {
		t.Fatalf("in-range cost: expected 10, got %d", got)
	}
}

func TestVerifyMalformedHash(t *testing.T) {
	if New(4).Verify("pw", "not-a-bcrypt-hash") {
		t.Fatal("malformed hash verified")
	}
}
