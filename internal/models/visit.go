package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Visit booking statuses.
const (
	VisitScheduled  = "scheduled"
	VisitInProgress = "in-progress"
	VisitCompleted  = "completed"
	VisitCancelled  = "cancelled"
)

type VisitLocation struct {
	Address   string  `bson:"address,omitempty" json:"address,omitempty"`
	Latitude  float64 `bson:"latitude,omitempty" json:"latitude,omitempty"`
	Longitude float64 `bson:"longitude,omitempty" json:"longitude,omitempty"`
}

// EVV is the electronic visit verification block; check-in/out stamp it.
type EVV struct {
	CheckIn  *time.Time `bson:"checkIn,omitempty" json:"checkIn,omitempty"`
	CheckOut *time.Time `bson:"checkOut,omitempty" json:"checkOut,omitempty"`
	Verified bool       `bson:"verified" json:"verified"`
}

type VisitTask struct {
	TaskName  string `bson:"taskName" json:"taskName"`
	Completed bool   `bson:"completed" json:"completed"`
}

// VisitBooking is a single dated visit with an EVV trail and task checklist,
// as scheduled for the caregiver app.
type VisitBooking struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ClientID        string             `bson:"clientId" json:"clientId"`
	CaregiverID     string             `bson:"caregiverId" json:"caregiverId"`
	AppointmentDate time.Time          `bson:"appointmentDate" json:"appointmentDate"`
	StartTime       string             `bson:"startTime" json:"startTime"`
	EndTime         string             `bson:"endTime" json:"endTime"`
	Status          string             `bson:"status" json:"status"`
	Location        VisitLocation      `bson:"location,omitempty" json:"location,omitempty"`
	EVV             EVV                `bson:"evv" json:"evv"`
	Tasks           []VisitTask        `bson:"tasks,omitempty" json:"tasks,omitempty"`
	Notes           string             `bson:"notes,omitempty" json:"notes,omitempty"`
	Tags            []string           `bson:"tags,omitempty" json:"tags,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
}
