package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/todokeeper/internal/common"
)

// Hasher hashes and verifies passwords with bcrypt. It holds no mutable state
// after construction and is safe for concurrent use.
type Hasher struct {
	cost  int
	dummy []byte
}

// NewHasher returns a bcrypt hasher. A non-positive cost falls back to
// bcrypt.DefaultCost.
//
// The hash used by VerifyDummy is prepared here at the same cost, so a
// hasher that exists can always spend real bcrypt work on unknown users.
func NewHasher(cost int) (*Hasher, error) {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	dummy, err := bcrypt.GenerateFromPassword(common.GenerateRandByteArray(16), cost)
	if err != nil {
		return nil, fmt.Errorf("prepare dummy hash: %w", err)
	}
	return &Hasher{cost: cost, dummy: dummy}, nil
}

// Hash returns a salted bcrypt hash of password.
func (h *Hasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether password matches hash. A malformed hash or any
// bcrypt failure is a mismatch.
func (h *Hasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// VerifyDummy spends the same bcrypt work as Verify against a hash nobody
// owns. It is used when the user does not exist so both failure paths
// take the same time.
func (h *Hasher) VerifyDummy(password string) {
	_ = bcrypt.CompareHashAndPassword(h.dummy, []byte(password))
}
