package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/careflowcentral/careflow-backend/internal/database"
	"github.com/careflowcentral/careflow-backend/internal/middleware"
	"github.com/careflowcentral/careflow-backend/internal/models"
	"github.com/careflowcentral/careflow-backend/internal/services"
)

const (
	onboardingMaxMemory   = 32 << 20
	staffDocumentsFolder  = "staff-documents"
	vaccinationsFormField = "vaccinationRecords"
)

// SubmitOnboarding is the public staff application endpoint: a multipart
// form carrying the profile as a jsonData field plus optional document
// uploads. It stores the documents, persists the profile, provisions login
// credentials and returns a token for the new identity.
func SubmitOnboarding(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(onboardingMaxMemory); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	jsonData := r.FormValue("jsonData")
	if jsonData == "" {
		writeError(w, http.StatusBadRequest, "jsonData field is required")
		return
	}

	var profile models.StaffProfile
	if err := json.Unmarshal([]byte(jsonData), &profile); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid jsonData")
		return
	}

	var errs []string
	if profile.PersonalInformation.FullName.FirstName == "" {
		errs = append(errs, "First name is required")
	}
	if profile.PersonalInformation.FullName.LastName == "" {
		errs = append(errs, "Last name is required")
	}
	if profile.PersonalInformation.ContactDetails.EmailAddress == "" {
		errs = append(errs, "Email address is required")
	}
	if len(errs) > 0 {
		writeValidationError(w, errs)
		return
	}

	// Document uploads happen before the profile write so the stored record
	// already carries its URLs.
	uploads := map[string]*string{
		"idCopy":              &profile.EmploymentDocumentation.GovernmentIDs.DriversLicenseUploadURL,
		"certCopy":            &profile.EmploymentDocumentation.CertificationUploads.CPRCertificationURL,
		"licenseCopy":         &profile.EmploymentDocumentation.CertificationUploads.ProfessionalLicenseURL,
		vaccinationsFormField: &profile.EmergencyMedicalInformation.HealthDeclarations.VaccinationRecordsUploadURL,
	}
	for field, dest := range uploads {
		headers := r.MultipartForm.File[field]
		if len(headers) == 0 {
			continue
		}
		url, err := cloudinaryService.UploadFileFromHeader(r.Context(), headers[0], staffDocumentsFolder)
		if err != nil {
			log.Printf("Failed to upload %s (%s): %v", field, headers[0].Filename, err)
			writeError(w, http.StatusInternalServerError, "Failed to upload document")
			return
		}
		*dest = url
	}

	now := time.Now()
	profile.ID = primitive.NilObjectID
	profile.Status = models.StaffStatusPendingReview
	profile.SubmissionTimestamp = now
	profile.CreatedAt = now
	profile.UpdatedAt = now

	ctx, cancel := requestContext(r)
	defer cancel()

	res, err := database.DB.Collection("staff_profiles").InsertOne(ctx, &profile)
	if err != nil {
		writeServerError(w, "SubmitOnboarding", err)
		return
	}
	profile.ID, _ = res.InsertedID.(primitive.ObjectID)

	result, err := provisioningService.ProvisionStaff(ctx, &profile)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmailRequired):
			writeError(w, http.StatusBadRequest, "Email is required for user account creation")
		case errors.Is(err, services.ErrEmailExists):
			writeError(w, http.StatusBadRequest, "Email already exists")
		default:
			writeServerError(w, "SubmitOnboarding", err)
		}
		return
	}

	email := strings.ToLower(strings.TrimSpace(profile.EmailAddress()))

	// Caregivers additionally get a record in the caregivers pool so the
	// main login fallback and the availability lookup can see them.
	if result.Pool == services.PoolCaregiverSeparate {
		if err := mirrorCaregiver(ctx, &profile, result.CredentialID, email); err != nil {
			log.Printf("Failed to mirror caregiver record for %s: %v", email, err)
		}
	}

	token, err := middleware.GenerateToken(result.CredentialID, email, result.Role, profile.PersonalInformation.FullName.FirstName)
	if err != nil {
		writeServerError(w, "SubmitOnboarding", err)
		return
	}

	message := "Application submitted successfully. Login credentials have been sent to your email."
	if !result.EmailSent {
		message = "Application submitted successfully, but the credentials email could not be sent."
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": message,
		"user": map[string]interface{}{
			"id":        result.CredentialID,
			"email":     email,
			"role":      result.Role,
			"profileId": profile.ID,
		},
		"token": token,
	})
}

// mirrorCaregiver copies the freshly provisioned caregiver credential into
// the caregivers pool with a profile summary attached.
func mirrorCaregiver(ctx context.Context, profile *models.StaffProfile, credentialID primitive.ObjectID, email string) error {
	var creds models.CaregiverCredentials
	err := database.DB.Collection("caregiver_credentials").
		FindOne(ctx, bson.M{"_id": credentialID}).
		Decode(&creds)
	if err != nil {
		return err
	}

	now := time.Now()
	_, err = database.DB.Collection("caregivers").InsertOne(ctx, &models.Caregiver{
		Email:        email,
		PasswordHash: creds.PasswordHash,
		Role:         models.RoleCaregiver,
		Profile: map[string]interface{}{
			"staffProfileId": profile.ID,
			"firstName":      profile.PersonalInformation.FullName.FirstName,
			"lastName":       profile.PersonalInformation.FullName.LastName,
			"phone":          profile.PersonalInformation.ContactDetails.PrimaryPhone,
			"position":       profile.ProfessionalDetails.PositionAppliedFor,
		},
		Status:    models.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	})
	return err
}
