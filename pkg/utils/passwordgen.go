package utils

import (
	"crypto/rand"
	"errors"
	"math/big"
	"time"
)

// PasswordCharset is the fixed 70-character alphabet used for generated
// credentials: mixed-case letters, digits, and symbols.
const PasswordCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*"

// DefaultPasswordLength is the length used for auto-provisioned credentials.
const DefaultPasswordLength = 12

// TemporaryPasswordTTL is how long a temporary password stays valid.
// Expiry is advisory metadata; consumers must check ExpiresAt themselves.
const TemporaryPasswordTTL = 24 * time.Hour

var ErrInvalidPasswordLength = errors.New("password length must be positive")

// TemporaryPassword is a generated secret with advisory expiry metadata.
type TemporaryPassword struct {
	Password    string    `json:"password"`
	ExpiresAt   time.Time `json:"expiresAt"`
	IsTemporary bool      `json:"isTemporary"`
}

// GenerateSecurePassword draws length characters independently and uniformly
// from PasswordCharset using crypto/rand.
func GenerateSecurePassword(length int) (string, error) {
	if length <= 0 {
		return "", ErrInvalidPasswordLength
	}

	charsetSize := big.NewInt(int64(len(PasswordCharset)))
	password := make([]byte, length)
	for i := range password {
		n, err := rand.Int(rand.Reader, charsetSize)
		if err != nil {
			return "", err
		}
		password[i] = PasswordCharset[n.Int64()]
	}

	return string(password), nil
}

// GenerateTemporaryPassword generates a password that expires 24 hours from now.
func GenerateTemporaryPassword(length int) (*TemporaryPassword, error) {
	password, err := GenerateSecurePassword(length)
	if err != nil {
		return nil, err
	}

	return &TemporaryPassword{
		Password:    password,
		ExpiresAt:   time.Now().Add(TemporaryPasswordTTL),
		IsTemporary: true,
	}, nil
}
