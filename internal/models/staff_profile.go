package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Staff profile workflow states.
const (
	StaffStatusPendingReview = "Pending Review"
	StaffStatusApproved      = "Approved"
	StaffStatusActive        = "Active"
	StaffStatusInactive      = "Inactive"
)

type FullName struct {
	FirstName     string `bson:"firstName" json:"firstName"`
	MiddleInitial string `bson:"middleInitial,omitempty" json:"middleInitial,omitempty"`
	LastName      string `bson:"lastName" json:"lastName"`
}

type ContactDetails struct {
	PrimaryPhone   string `bson:"primaryPhone" json:"primaryPhone"`
	SecondaryPhone string `bson:"secondaryPhone,omitempty" json:"secondaryPhone,omitempty"`
	EmailAddress   string `bson:"emailAddress" json:"emailAddress"`
}

type Demographics struct {
	DateOfBirth       time.Time `bson:"dateOfBirth" json:"dateOfBirth"`
	Gender            string    `bson:"gender,omitempty" json:"gender,omitempty"`
	PreferredLanguage string    `bson:"preferredLanguage,omitempty" json:"preferredLanguage,omitempty"`
	OtherLanguage     string    `bson:"otherLanguage,omitempty" json:"otherLanguage,omitempty"`
}

type Address struct {
	Street string `bson:"street,omitempty" json:"street,omitempty"`
	City   string `bson:"city,omitempty" json:"city,omitempty"`
	State  string `bson:"state,omitempty" json:"state,omitempty"`
	Zip    string `bson:"zip,omitempty" json:"zip,omitempty"`
}

type PersonalInformation struct {
	FullName       FullName       `bson:"fullName" json:"fullName"`
	ContactDetails ContactDetails `bson:"contactDetails" json:"contactDetails"`
	Demographics   Demographics   `bson:"demographics" json:"demographics"`
	Address        Address        `bson:"address" json:"address"`
}

type Qualifications struct {
	Certifications  []string `bson:"certifications,omitempty" json:"certifications,omitempty"`
	Specializations []string `bson:"specializations,omitempty" json:"specializations,omitempty"`
}

type WorkAvailability struct {
	DaysAvailable   []string `bson:"daysAvailable,omitempty" json:"daysAvailable,omitempty"`
	ShiftPreference []string `bson:"shiftPreference,omitempty" json:"shiftPreference,omitempty"`
}

type ProfessionalDetails struct {
	PositionAppliedFor string           `bson:"positionAppliedFor" json:"positionAppliedFor"`
	OtherPosition      string           `bson:"otherPosition,omitempty" json:"otherPosition,omitempty"`
	Qualifications     Qualifications   `bson:"qualifications" json:"qualifications"`
	WorkAvailability   WorkAvailability `bson:"workAvailability" json:"workAvailability"`
}

type GovernmentIDs struct {
	SocialSecurityNumber     string `bson:"socialSecurityNumber,omitempty" json:"-"`
	DriversLicenseNumber     string `bson:"driversLicenseNumber,omitempty" json:"driversLicenseNumber,omitempty"`
	DriversLicenseUploadURL  string `bson:"driversLicenseUploadUrl,omitempty" json:"driversLicenseUploadUrl,omitempty"`
}

type CertificationUploads struct {
	CPRCertificationURL    string `bson:"cprCertificationUrl,omitempty" json:"cprCertificationUrl,omitempty"`
	ProfessionalLicenseURL string `bson:"professionalLicenseUrl,omitempty" json:"professionalLicenseUrl,omitempty"`
}

type EmploymentDocumentation struct {
	GovernmentIDs          GovernmentIDs        `bson:"governmentIDs,omitempty" json:"governmentIDs,omitempty"`
	CertificationUploads   CertificationUploads `bson:"certificationUploads,omitempty" json:"certificationUploads,omitempty"`
	BackgroundCheckConsent bool                 `bson:"backgroundCheckConsent" json:"backgroundCheckConsent"`
}

type HealthDeclarations struct {
	PhysicalLimitations            bool   `bson:"physicalLimitations" json:"physicalLimitations"`
	PhysicalLimitationsDescription string `bson:"physicalLimitationsDescription,omitempty" json:"physicalLimitationsDescription,omitempty"`
	UpToDateOnVaccinations         bool   `bson:"upToDateOnVaccinations" json:"upToDateOnVaccinations"`
	VaccinationRecordsUploadURL    string `bson:"vaccinationRecordsUploadUrl,omitempty" json:"vaccinationRecordsUploadUrl,omitempty"`
}

type EmergencyMedicalInformation struct {
	EmergencyContact   StaffEmergencyContact `bson:"emergencyContact,omitempty" json:"emergencyContact,omitempty"`
	HealthDeclarations HealthDeclarations    `bson:"healthDeclarations,omitempty" json:"healthDeclarations,omitempty"`
}

type StaffEmergencyContact struct {
	Name         string `bson:"name,omitempty" json:"name,omitempty"`
	Relationship string `bson:"relationship,omitempty" json:"relationship,omitempty"`
	Phone        string `bson:"phone,omitempty" json:"phone,omitempty"`
}

type PolicyAcknowledgments struct {
	EmployeeHandbook         bool `bson:"employeeHandbook" json:"employeeHandbook"`
	HIPAACompliance          bool `bson:"hipaaCompliance" json:"hipaaCompliance"`
	ElectronicCommunications bool `bson:"electronicCommunications" json:"electronicCommunications"`
}

type Agreements struct {
	PolicyAcknowledgments PolicyAcknowledgments `bson:"policyAcknowledgments" json:"policyAcknowledgments"`
	DigitalSignature      string                `bson:"digitalSignature,omitempty" json:"digitalSignature,omitempty"`
	SignatureDate         time.Time             `bson:"signatureDate,omitempty" json:"signatureDate,omitempty"`
}

// StaffProfile is the onboarding record for agency staff. A caregiver
// position additionally provisions a CaregiverCredentials record pointing
// back at this profile.
type StaffProfile struct {
	ID                          primitive.ObjectID          `bson:"_id,omitempty" json:"id"`
	PersonalInformation         PersonalInformation         `bson:"personalInformation" json:"personalInformation"`
	ProfessionalDetails         ProfessionalDetails         `bson:"professionalDetails" json:"professionalDetails"`
	EmploymentDocumentation     EmploymentDocumentation     `bson:"employmentDocumentation,omitempty" json:"employmentDocumentation,omitempty"`
	EmergencyMedicalInformation EmergencyMedicalInformation `bson:"emergencyMedicalInformation,omitempty" json:"emergencyMedicalInformation,omitempty"`
	Agreements                  Agreements                  `bson:"agreements,omitempty" json:"agreements,omitempty"`
	SubmissionTimestamp         time.Time                   `bson:"submissionTimestamp" json:"submissionTimestamp"`
	Status                      string                      `bson:"status" json:"status"`
	CreatedBy                   primitive.ObjectID          `bson:"createdBy,omitempty" json:"createdBy,omitempty"`
	CustomFields                []CustomField               `bson:"customFields,omitempty" json:"customFields,omitempty"`
	CreatedAt                   time.Time                   `bson:"createdAt" json:"createdAt"`
	UpdatedAt                   time.Time                   `bson:"updatedAt" json:"updatedAt"`
}

// EmailAddress returns the contact email used for credential provisioning.
func (s *StaffProfile) EmailAddress() string {
	return s.PersonalInformation.ContactDetails.EmailAddress
}
