package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Patient is a care recipient managed on behalf of a client (for example a
// family member receiving the visits). Patients carry medical detail but no
// login identity of their own.
type Patient struct {
	ID             primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	PersonalInfo   ClientPersonalInfo   `bson:"personalInfo" json:"personalInfo"`
	ContactDetails ClientContactDetails `bson:"contactDetails,omitempty" json:"contactDetails,omitempty"`
	MedicalInfo    ClientMedicalInfo    `bson:"medicalInfo,omitempty" json:"medicalInfo,omitempty"`
	Location       ClientLocation       `bson:"location,omitempty" json:"location,omitempty"`
	ClientID       primitive.ObjectID   `bson:"clientId,omitempty" json:"clientId,omitempty"`
	Status         string               `bson:"status" json:"status"`
	CreatedBy      primitive.ObjectID   `bson:"createdBy,omitempty" json:"createdBy,omitempty"`
	CustomFields   []CustomField        `bson:"customFields,omitempty" json:"customFields,omitempty"`
	CreatedAt      time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time            `bson:"updatedAt" json:"updatedAt"`
}
