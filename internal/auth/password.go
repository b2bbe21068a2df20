package auth

import (
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher hashes and checks passwords with bcrypt at a fixed cost.
type PasswordHasher struct {
	cost int

	dummyOnce sync.Once
	dummyHash []byte
}

// NewPasswordHasher returns a hasher using cost, clamped to bcrypt's bounds.
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	if cost > bcrypt.MaxCost {
		cost = bcrypt.MaxCost
	}
	return &PasswordHasher{cost: cost}
}

// HashPassword returns the bcrypt hash of password.
func (h *PasswordHasher) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches hash. An empty hash stands
// for an unknown account: a dummy hash of the same cost is compared instead
// and the result is always false, so both failures take the same time.
func (h *PasswordHasher) CheckPassword(hash, password string) bool {
	if hash == "" {
		bcrypt.CompareHashAndPassword(h.dummy(), []byte(password))
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func (h *PasswordHasher) dummy() []byte {
	h.dummyOnce.Do(func() {
		// The error is impossible: the input is short and the cost validated.
		h.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("linkshare-dummy-password"), h.cost)
	})
	return h.dummyHash
}
