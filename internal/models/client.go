package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Client profile statuses.
const (
	ClientStatusActive   = "Active"
	ClientStatusInactive = "Inactive"
	ClientStatusDeceased = "Deceased"
)

// CustomField is the open-extension escape hatch for profile attributes that
// have no declared field yet.
type CustomField struct {
	Name  string      `bson:"name" json:"name"`
	Value interface{} `bson:"value" json:"value"`
}

type ClientPersonalInfo struct {
	FirstName       string    `bson:"firstName" json:"firstName"`
	LastName        string    `bson:"lastName" json:"lastName"`
	DOB             time.Time `bson:"dob" json:"dob"`
	Gender          string    `bson:"gender,omitempty" json:"gender,omitempty"`
	ProfilePhotoURL string    `bson:"profilePhotoUrl,omitempty" json:"profilePhotoUrl,omitempty"`
}

type EmergencyContact struct {
	FullName     string `bson:"fullName" json:"fullName"`
	Relationship string `bson:"relationship" json:"relationship"`
	Phone        string `bson:"phone" json:"phone"`
}

type ClientContactDetails struct {
	Email            string           `bson:"email" json:"email"`
	Phone            string           `bson:"phone" json:"phone"`
	EmergencyContact EmergencyContact `bson:"emergencyContact" json:"emergencyContact"`
}

type Medication struct {
	Name      string `bson:"name" json:"name"`
	Dosage    string `bson:"dosage,omitempty" json:"dosage,omitempty"`
	Frequency string `bson:"frequency,omitempty" json:"frequency,omitempty"`
}

type ClientMedicalInfo struct {
	Conditions     []string     `bson:"conditions,omitempty" json:"conditions,omitempty"`
	OtherCondition string       `bson:"otherCondition,omitempty" json:"otherCondition,omitempty"`
	Allergies      []string     `bson:"allergies,omitempty" json:"allergies,omitempty"`
	OtherAllergies string       `bson:"otherAllergies,omitempty" json:"otherAllergies,omitempty"`
	Medications    []Medication `bson:"medications,omitempty" json:"medications,omitempty"`
	Mobility       string       `bson:"mobility,omitempty" json:"mobility,omitempty"`
}

type ClientLocation struct {
	Street string `bson:"street" json:"street"`
	Apt    string `bson:"apt,omitempty" json:"apt,omitempty"`
	City   string `bson:"city" json:"city"`
	State  string `bson:"state" json:"state"`
	Zip    string `bson:"zip" json:"zip"`
	Notes  string `bson:"notes,omitempty" json:"notes,omitempty"`
}

type ClientCareNeeds struct {
	Activities          []string `bson:"activities,omitempty" json:"activities,omitempty"`
	SpecialRequirements string   `bson:"specialRequirements,omitempty" json:"specialRequirements,omitempty"`
}

type ScheduleSlot struct {
	Day       string `bson:"day" json:"day"`
	StartTime string `bson:"startTime,omitempty" json:"startTime,omitempty"`
	EndTime   string `bson:"endTime,omitempty" json:"endTime,omitempty"`
}

type ClientServicePreferences struct {
	Schedule          []ScheduleSlot `bson:"schedule,omitempty" json:"schedule,omitempty"`
	CaregiverGender   string         `bson:"caregiverGender,omitempty" json:"caregiverGender,omitempty"`
	CaregiverLanguage string         `bson:"caregiverLanguage,omitempty" json:"caregiverLanguage,omitempty"`
}

type ClientConsent struct {
	PhotoRelease   bool      `bson:"photoRelease" json:"photoRelease"`
	MedicalConsent bool      `bson:"medicalConsent" json:"medicalConsent"`
	Signature      string    `bson:"signature" json:"signature"`
	ConsentDate    time.Time `bson:"consentDate" json:"consentDate"`
}

// Client is a care recipient's profile, independent of login identity. The
// linked ClientCredentials record references it by id; deleting one never
// cascades to the other.
type Client struct {
	ID                 primitive.ObjectID       `bson:"_id,omitempty" json:"id"`
	PersonalInfo       ClientPersonalInfo       `bson:"personalInfo" json:"personalInfo"`
	ContactDetails     ClientContactDetails     `bson:"contactDetails" json:"contactDetails"`
	MedicalInfo        ClientMedicalInfo        `bson:"medicalInfo,omitempty" json:"medicalInfo,omitempty"`
	Location           ClientLocation           `bson:"location" json:"location"`
	CareNeeds          ClientCareNeeds          `bson:"careNeeds,omitempty" json:"careNeeds,omitempty"`
	ServicePreferences ClientServicePreferences `bson:"servicePreferences,omitempty" json:"servicePreferences,omitempty"`
	Consent            ClientConsent            `bson:"consent" json:"consent"`
	Status             string                   `bson:"status" json:"status"`
	CreatedBy          primitive.ObjectID       `bson:"createdBy,omitempty" json:"createdBy,omitempty"`
	CustomFields       []CustomField            `bson:"customFields,omitempty" json:"customFields,omitempty"`
	CreatedAt          time.Time                `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time                `bson:"updatedAt" json:"updatedAt"`
}

// Email returns the contact email used for credential provisioning.
func (c *Client) EmailAddress() string {
	return c.ContactDetails.Email
}
