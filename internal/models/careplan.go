package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Care plan statuses.
const (
	CarePlanPending    = "Pending"
	CarePlanInProgress = "In Progress"
	CarePlanCompleted  = "Completed"
	CarePlanCancelled  = "Cancelled"
)

// CarePlan describes ongoing care for a patient. AssignedCaregiver may be
// nil while the plan is unassigned.
type CarePlan struct {
	ID                primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Patient           primitive.ObjectID  `bson:"patient" json:"patient"`
	Title             string              `bson:"title" json:"title"`
	Description       string              `bson:"description" json:"description"`
	AssignedCaregiver *primitive.ObjectID `bson:"assignedCaregiver,omitempty" json:"assignedCaregiver,omitempty"`
	Status            string              `bson:"status" json:"status"`
	DueDate           *time.Time          `bson:"dueDate,omitempty" json:"dueDate,omitempty"`
	Frequency         string              `bson:"frequency,omitempty" json:"frequency,omitempty"`
	Notes             string              `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt         time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time           `bson:"updatedAt" json:"updatedAt"`
}
