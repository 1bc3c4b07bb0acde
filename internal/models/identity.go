package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles carried by identities and checked by route allow-lists.
const (
	RoleClient    = "client"
	RoleCaregiver = "caregiver"
	RoleAdmin     = "admin"
	RoleStaff     = "staff"
)

// Identity statuses.
const (
	StatusActive    = "active"
	StatusInactive  = "inactive"
	StatusPending   = "pending"
	StatusSuspended = "suspended"
)

// Lockout policy: MaxLoginAttempts consecutive failures lock the identity
// for LockDuration. A successful login resets both unconditionally.
const (
	MaxLoginAttempts = 5
	LockDuration     = 2 * time.Hour
)

// LoginLock tracks consecutive login failures and the resulting lock window.
// Shared by all three identity pools.
type LoginLock struct {
	LoginAttempts int        `bson:"loginAttempts" json:"-"`
	LockUntil     *time.Time `bson:"lockUntil,omitempty" json:"-"`
}

// IsLocked reports whether the lock window is still open at now.
func (l *LoginLock) IsLocked(now time.Time) bool {
	return l.LockUntil != nil && l.LockUntil.After(now)
}

// RegisterFailedLogin increments the failure counter and, at the threshold,
// opens a lock window. Returns true when this failure triggered the lock.
func (l *LoginLock) RegisterFailedLogin(now time.Time) bool {
	l.LoginAttempts++
	if l.LoginAttempts >= MaxLoginAttempts {
		until := now.Add(LockDuration)
		l.LockUntil = &until
		return true
	}
	return false
}

// ResetLoginLock clears the failure counter and lock window unconditionally.
func (l *LoginLock) ResetLoginLock() {
	l.LoginAttempts = 0
	l.LockUntil = nil
}

// User is the main-system identity pool. Staff provisioned into a
// non-caregiver position land here; admins live here exclusively.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username     string             `bson:"username,omitempty" json:"username,omitempty"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"passwordHash" json:"-"`
	Role         string             `bson:"role" json:"role"`
	Profile      interface{}        `bson:"profile,omitempty" json:"profile,omitempty"`
	Status       string             `bson:"status" json:"status"`
	LoginLock    `bson:",inline"`
	LastLogin    *time.Time `bson:"lastLogin,omitempty" json:"lastLogin,omitempty"`
	CreatedAt    time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time  `bson:"updatedAt" json:"updatedAt"`
}

// UserProfileRef is the embedded profile summary stored on a User created by
// the provisioning workflow.
type UserProfileRef struct {
	StaffID   primitive.ObjectID `bson:"staffId,omitempty" json:"staffId,omitempty"`
	FirstName string             `bson:"firstName,omitempty" json:"firstName,omitempty"`
	LastName  string             `bson:"lastName,omitempty" json:"lastName,omitempty"`
	Phone     string             `bson:"phone,omitempty" json:"phone,omitempty"`
}

// CaregiverCredentials is the separate caregiver credential pool, kept apart
// from the main User pool and consumed by the caregiver app.
type CaregiverCredentials struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email                string             `bson:"email" json:"email"`
	PasswordHash         string             `bson:"passwordHash" json:"-"`
	StaffProfileID       primitive.ObjectID `bson:"staffProfileId" json:"staffProfileId"`
	Role                 string             `bson:"role" json:"role"`
	Status               string             `bson:"status" json:"status"`
	IsSeparateCredential bool               `bson:"isSeparateCredential" json:"isSeparateCredential"`
	TargetApp            string             `bson:"targetApp" json:"targetApp"`
	LoginLock            `bson:",inline"`
	LastLogin            *time.Time `bson:"lastLogin,omitempty" json:"lastLogin,omitempty"`
	CreatedAt            time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt            time.Time  `bson:"updatedAt" json:"updatedAt"`
}

// ClientCredentials is the client credential pool, provisioned alongside a
// Client profile.
type ClientCredentials struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email                string             `bson:"email" json:"email"`
	PasswordHash         string             `bson:"passwordHash" json:"-"`
	ClientProfileID      primitive.ObjectID `bson:"clientProfileId" json:"clientProfileId"`
	Role                 string             `bson:"role" json:"role"`
	Status               string             `bson:"status" json:"status"`
	IsSeparateCredential bool               `bson:"isSeparateCredential" json:"isSeparateCredential"`
	TargetApp            string             `bson:"targetApp" json:"targetApp"`
	LoginLock            `bson:",inline"`
	LastLogin            *time.Time `bson:"lastLogin,omitempty" json:"lastLogin,omitempty"`
	CreatedAt            time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt            time.Time  `bson:"updatedAt" json:"updatedAt"`
}
