package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/careflowcentral/careflow-backend/internal/models"
	"github.com/careflowcentral/careflow-backend/pkg/utils"
)

func TestAuthenticate_LockedIdentityRejectsCorrectPassword(t *testing.T) {
	// The lock check runs before the password comparison, so even the
	// correct password gets a 423 while the window is open.
	password := "correct-horse-battery"
	hash, err := utils.HashPassword(password)
	require.NoError(t, err)

	until := time.Now().Add(time.Hour)
	lock := &models.LoginLock{LoginAttempts: models.MaxLoginAttempts, LockUntil: &until}

	rec := httptest.NewRecorder()
	authenticate(rec, context.Background(), "users", primitive.NewObjectID(),
		"locked@example.com", models.RoleStaff, "", hash, lock, password)

	assert.Equal(t, http.StatusLocked, rec.Code)
	assert.Equal(t, lockedMessage, errorMessage(t, rec))
	assert.Equal(t, models.MaxLoginAttempts, lock.LoginAttempts)
}
