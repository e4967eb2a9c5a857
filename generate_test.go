package goUsers

import (
	"testing"
	"time"
)

func TestGenerateIDUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		id := generateID()
		if id == "" {
			t.Fatal("empty id")
		}
		if seen[id] {
			t.Fatalf("duplicate id after %d draws: %s", i, id)
		}
		seen[id] = true
	}
}

func TestGenerateTokenUnique(t *testing.T) {
	a, b := generateToken(), generateToken()
	if a == "" || b == "" {
		t.Fatal("empty token")
	}
	if a == b {
		t.Fatal("two token draws collided")
	}
	if len(a) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(a))
	}
}

func TestGenerateCreateAt(t *testing.T) {
	before := time.Now().UnixMilli()
	got := generateCreateAt()
	after := time.Now().UnixMilli()

	if got < before || got > after {
		t.Fatalf("createAt %d outside [%d, %d]", got, before, after)
	}
}
