package crypto

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// HashCost is the bcrypt work factor. Cost 10 keeps a single hash in the
// tens-of-milliseconds range on current hardware.
const HashCost = 10

var ErrHashFailed = errors.New("password hashing failed")

// HashPassword hashes a raw password with bcrypt. The salt is generated
// by bcrypt and embedded in the returned hash string.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), HashCost)
	if err != nil {
		return "", ErrHashFailed
	}
	return string(hash), nil
}

// VerifyPassword reports whether a raw password matches the stored bcrypt hash.
// bcrypt's comparison is constant-time relative to the candidate password.
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
