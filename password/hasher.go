// Package password provides the bcrypt hashing policy used by the account
// engine. Hashes are salted by bcrypt itself; verification is constant
// time within bcrypt's own comparison.
package password

import "golang.org/x/crypto/bcrypt"

const (
	// DefaultCost is applied when the configured cost is absent or out
	// of bcrypt's range.
	DefaultCost = 13

	// MinCost and MaxCost bound acceptable configured costs.
	MinCost = bcrypt.MinCost
	MaxCost = bcrypt.MaxCost
)

// Hasher hashes and verifies passwords at a fixed cost.
type Hasher struct {
	cost int
}

// New returns a Hasher at the given cost, clamped to [DefaultCost] when
// out of range.
func New(cost int) *Hasher {
	if cost < MinCost || cost > MaxCost {
		cost = DefaultCost
	}
	return &Hasher{cost: cost}
}

// Cost reports the effective bcrypt cost.
func (h *Hasher) Cost() int {
	return h.cost
}

// Hash produces a salted bcrypt hash of plain.
func (h *Hasher) Hash(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether plain matches the stored bcrypt hash. Malformed
// hashes verify as false.
func (h *Hasher) Verify(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
