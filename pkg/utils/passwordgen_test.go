package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSecurePassword_Length(t *testing.T) {
	password, err := GenerateSecurePassword(DefaultPasswordLength)
	require.NoError(t, err)
	assert.Len(t, password, 12)

	long, err := GenerateSecurePassword(64)
	require.NoError(t, err)
	assert.Len(t, long, 64)
}

func TestGenerateSecurePassword_RejectsNonPositiveLength(t *testing.T) {
	_, err := GenerateSecurePassword(0)
	assert.ErrorIs(t, err, ErrInvalidPasswordLength)

	_, err = GenerateSecurePassword(-5)
	assert.ErrorIs(t, err, ErrInvalidPasswordLength)
}

func TestGenerateSecurePassword_CharsetOnly(t *testing.T) {
	for i := 0; i < 100; i++ {
		password, err := GenerateSecurePassword(DefaultPasswordLength)
		require.NoError(t, err)
		for _, c := range password {
			assert.True(t, strings.ContainsRune(PasswordCharset, c),
				"character %q outside charset", c)
		}
	}
}

// Birthday-bound sanity check: 10k length-12 passwords over a 70-char
// alphabet should never collide in practice.
func TestGenerateSecurePassword_NoDuplicates(t *testing.T) {
	seen := make(map[string]struct{}, 10000)
	for i := 0; i < 10000; i++ {
		password, err := GenerateSecurePassword(DefaultPasswordLength)
		require.NoError(t, err)
		_, dup := seen[password]
		require.False(t, dup, "duplicate password generated: %s", password)
		seen[password] = struct{}{}
	}
}

func TestGenerateTemporaryPassword(t *testing.T) {
	before := time.Now()
	temp, err := GenerateTemporaryPassword(DefaultPasswordLength)
	require.NoError(t, err)

	assert.Len(t, temp.Password, 12)
	assert.True(t, temp.IsTemporary)
	assert.WithinDuration(t, before.Add(TemporaryPasswordTTL), temp.ExpiresAt, 5*time.Second)
}

func TestGenerateTemporaryPassword_RejectsNonPositiveLength(t *testing.T) {
	_, err := GenerateTemporaryPassword(0)
	assert.ErrorIs(t, err, ErrInvalidPasswordLength)
}
