package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// dummyPassword only feeds the timing-equalization hash.
const dummyPassword = "classifieds-timing-equalizer"

// Hasher hashes and verifies passwords with bcrypt.
type Hasher struct {
	cost      int
	dummyHash string
}

// NewHasher returns a bcrypt Hasher. A cost outside bcrypt's accepted range
// falls back to bcrypt.DefaultCost.
func NewHasher(cost int) (*Hasher, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	h := &Hasher{cost: cost}
	dummy, err := h.Hash(dummyPassword)
	if err != nil {
		return nil, fmt.Errorf("prepare dummy hash: %w", err)
	}
	h.dummyHash = dummy
	return h, nil
}

// Hash returns a salted bcrypt hash of password. Passwords longer than
// 72 bytes are rejected with bcrypt.ErrPasswordTooLong.
func (h *Hasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether password matches hash. Malformed hashes never match.
func (h *Hasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// DummyHash returns a valid hash of a throwaway password, computed with the
// same cost as real hashes. Comparing against it costs as much as a real check.
func (h *Hasher) DummyHash() string {
	return h.dummyHash
}
