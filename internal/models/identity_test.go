package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginLock_IsLocked(t *testing.T) {
	now := time.Now()

	var lock LoginLock
	assert.False(t, lock.IsLocked(now), "fresh identity must not be locked")

	past := now.Add(-time.Minute)
	lock.LockUntil = &past
	assert.False(t, lock.IsLocked(now), "expired lock window must not count as locked")

	future := now.Add(time.Minute)
	lock.LockUntil = &future
	assert.True(t, lock.IsLocked(now))
}

func TestLoginLock_FifthFailureLocks(t *testing.T) {
	now := time.Now()
	lock := LoginLock{LoginAttempts: 4}

	locked := lock.RegisterFailedLogin(now)
	require.True(t, locked, "fifth consecutive failure must trigger the lock")
	require.NotNil(t, lock.LockUntil)
	assert.WithinDuration(t, now.Add(LockDuration), *lock.LockUntil, time.Second)
	assert.True(t, lock.IsLocked(now))
}

func TestLoginLock_EarlyFailuresDoNotLock(t *testing.T) {
	now := time.Now()
	var lock LoginLock

	for i := 1; i < MaxLoginAttempts; i++ {
		locked := lock.RegisterFailedLogin(now)
		assert.False(t, locked, "failure %d must not lock", i)
		assert.Nil(t, lock.LockUntil)
	}
	assert.Equal(t, MaxLoginAttempts-1, lock.LoginAttempts)
}

func TestLoginLock_ResetClearsCounterAndWindow(t *testing.T) {
	now := time.Now()
	lock := LoginLock{LoginAttempts: 4}
	lock.RegisterFailedLogin(now)
	require.True(t, lock.IsLocked(now))

	lock.ResetLoginLock()
	assert.Zero(t, lock.LoginAttempts)
	assert.Nil(t, lock.LockUntil)
	assert.False(t, lock.IsLocked(now))
}
