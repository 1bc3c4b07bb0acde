package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Appointment statuses. Transitions move forward only, except cancellation.
const (
	AppointmentScheduled = "scheduled"
	AppointmentCompleted = "completed"
	AppointmentCancelled = "cancelled"
)

// Appointment is a scheduled visit pairing a client with a caregiver.
type Appointment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Client        primitive.ObjectID `bson:"client" json:"client"`
	Caregiver     primitive.ObjectID `bson:"caregiver" json:"caregiver"`
	Start         time.Time          `bson:"start" json:"start"`
	End           time.Time          `bson:"end" json:"end"`
	DurationHours float64            `bson:"durationHours" json:"durationHours"`
	Status        string             `bson:"status" json:"status"`
	Notes         string             `bson:"notes" json:"notes"`
	CreatedBy     primitive.ObjectID `bson:"createdBy,omitempty" json:"createdBy,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}
