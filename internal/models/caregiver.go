package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Caregiver is the hybrid record in the caregivers pool: a login-capable
// identity with an embedded free-form profile. The main login falls back to
// this pool when an email is not found among users.
type Caregiver struct {
	ID           primitive.ObjectID     `bson:"_id,omitempty" json:"id"`
	Email        string                 `bson:"email" json:"email"`
	PasswordHash string                 `bson:"passwordHash" json:"-"`
	Role         string                 `bson:"role" json:"role"`
	Profile      map[string]interface{} `bson:"profile,omitempty" json:"profile,omitempty"`
	Status       string                 `bson:"status" json:"status"`
	LoginLock    `bson:",inline"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}
