package utils

import (
	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the work factor for newly hashed passwords. Existing
// credential records were created at 12 rounds; keep in sync.
const BcryptCost = 12

// HashPassword hashes a plaintext password with bcrypt.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword compares a candidate plaintext against a stored bcrypt hash.
// bcrypt performs the comparison in constant time.
func CheckPassword(password, hashedPassword string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}
