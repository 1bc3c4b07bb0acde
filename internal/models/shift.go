package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Shift is a recurring weekly busy window for a caregiver. DayIndex follows
// time.Weekday numbering (0 = Sunday). TimeRange is "HH:MM - HH:MM" within a
// single day; ranges that would cross midnight are rejected on write.
type Shift struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	StaffID   primitive.ObjectID `bson:"staffId" json:"staffId"`
	DayIndex  int                `bson:"dayIndex" json:"dayIndex"`
	TimeRange string             `bson:"timeRange" json:"timeRange"`
}
