// Package password provides one-way password hashing for the credential store.
//
// The hashing scheme is a pluggable strategy behind the Hasher interface so
// the auth service never depends on a concrete algorithm.
package password

import "golang.org/x/crypto/bcrypt"

// Hasher hashes plaintext passwords and verifies candidates against stored
// hashes. Implementations must embed the salt in the hash output so Verify is
// self-contained.
type Hasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}

// BcryptHasher implements Hasher with bcrypt. Each Hash call generates a
// fresh random salt.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a BcryptHasher. Costs below bcrypt's minimum fall
// back to bcrypt.DefaultCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	out, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Verify reports whether plaintext matches hash. Malformed hashes report
// false rather than an error.
func (h *BcryptHasher) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
