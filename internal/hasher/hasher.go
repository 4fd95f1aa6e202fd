// Package hasher produces and verifies salted password digests.
package hasher

import (
	"strings"

	"prtracker/internal/apperr"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher abstracts the digest algorithm away from the services.
type PasswordHasher interface {
	// Hash returns a digest embedding a random salt and the cost factor.
	Hash(password string) (string, error)
	// Verify fails closed: malformed digests report false.
	Verify(password, digest string) bool
}

// Bcrypt implements PasswordHasher with golang.org/x/crypto/bcrypt.
type Bcrypt struct {
	cost int
}

var _ PasswordHasher = (*Bcrypt)(nil)

// NewBcrypt returns a hasher using cost, falling back to bcrypt.DefaultCost when
// cost is outside bcrypt's accepted range.
func NewBcrypt(cost int) *Bcrypt {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Bcrypt{cost: cost}
}

func (b *Bcrypt) Hash(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", apperr.Validation("password", "password is empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), b.cost)
	if err != nil {
		// bcrypt rejects passwords longer than 72 bytes
		return "", apperr.Validation("password", "password cannot be hashed: %v", err)
	}
	return string(hash), nil
}

func (b *Bcrypt) Verify(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
