package security

import "golang.org/x/crypto/bcrypt"

// bcrypt rejects inputs longer than 72 bytes.
var ErrPasswordTooLong = bcrypt.ErrPasswordTooLong

// Hasher turns a plaintext password into a one-way digest.
type Hasher interface {
	Hash(plain string) (string, error)
}

type BcryptHasher struct {
	cost int
}

func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}

	return &BcryptHasher{cost: cost}
}

// Hash password hashes a plain text password with bcrypt.
func (h *BcryptHasher) Hash(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)

	if err != nil {
		return "", err
	}

	return string(hash), nil
}
