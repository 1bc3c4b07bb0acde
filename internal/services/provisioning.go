package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/careflowcentral/careflow-backend/internal/models"
	"github.com/careflowcentral/careflow-backend/pkg/utils"
)

// Credential pools a provisioned identity can land in.
const (
	PoolCaregiverSeparate = "caregiver-separate"
	PoolMainSystem        = "main-system"
	PoolClientApp         = "client-app"
)

// Target apps recorded on separate credential records.
const (
	TargetAppCaregiver = "caregiver-app"
	TargetAppClient    = "client-app"
)

var (
	// ErrEmailRequired: the profile carries no contact email. The profile
	// write has already happened and is not rolled back.
	ErrEmailRequired = errors.New("email is required for user account creation")
	// ErrEmailExists: the unique email index rejected the credential insert.
	ErrEmailExists = errors.New("email already exists")
)

// CredentialStore persists identity records. Duplicate emails must surface
// as ErrEmailExists.
type CredentialStore interface {
	InsertUser(ctx context.Context, user *models.User) (primitive.ObjectID, error)
	InsertCaregiverCredentials(ctx context.Context, creds *models.CaregiverCredentials) (primitive.ObjectID, error)
	InsertClientCredentials(ctx context.Context, creds *models.ClientCredentials) (primitive.ObjectID, error)
}

// CredentialsMailer delivers a credentials email to a provisioned identity.
type CredentialsMailer interface {
	SendCredentials(to, password, role string) error
}

// ProvisioningService turns a freshly created profile into exactly one
// credential record plus a best-effort notification email. The profile write
// itself happens before this service is invoked and stays durable no matter
// what fails afterwards.
type ProvisioningService struct {
	store  CredentialStore
	mailer CredentialsMailer
}

func NewProvisioningService(store CredentialStore, mailer CredentialsMailer) *ProvisioningService {
	return &ProvisioningService{store: store, mailer: mailer}
}

// ProvisionResult reports which credential record was created and where.
type ProvisionResult struct {
	CredentialID primitive.ObjectID
	Pool         string
	Role         string
	EmailSent    bool
}

// ProvisionStaff creates credentials for a persisted staff profile. A
// caregiver position goes to the separate caregiver pool; any other position
// becomes a main-system user with that position as its role.
func (s *ProvisioningService) ProvisionStaff(ctx context.Context, profile *models.StaffProfile) (*ProvisionResult, error) {
	email := normalizeEmail(profile.EmailAddress())
	if email == "" {
		return nil, ErrEmailRequired
	}

	password, err := utils.GenerateSecurePassword(utils.DefaultPasswordLength)
	if err != nil {
		return nil, err
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	role := strings.ToLower(strings.TrimSpace(profile.ProfessionalDetails.PositionAppliedFor))
	now := time.Now()

	result := &ProvisionResult{}
	if role == models.RoleCaregiver {
		id, err := s.store.InsertCaregiverCredentials(ctx, &models.CaregiverCredentials{
			Email:                email,
			PasswordHash:         hash,
			StaffProfileID:       profile.ID,
			Role:                 models.RoleCaregiver,
			Status:               models.StatusActive,
			IsSeparateCredential: true,
			TargetApp:            TargetAppCaregiver,
			CreatedAt:            now,
			UpdatedAt:            now,
		})
		if err != nil {
			return nil, err
		}
		result.CredentialID = id
		result.Pool = PoolCaregiverSeparate
		result.Role = models.RoleCaregiver
	} else {
		if role == "" {
			role = models.RoleStaff
		}
		id, err := s.store.InsertUser(ctx, &models.User{
			Email:        email,
			PasswordHash: hash,
			Role:         role,
			Profile: models.UserProfileRef{
				StaffID:   profile.ID,
				FirstName: profile.PersonalInformation.FullName.FirstName,
				LastName:  profile.PersonalInformation.FullName.LastName,
				Phone:     profile.PersonalInformation.ContactDetails.PrimaryPhone,
			},
			Status:    models.StatusActive,
			CreatedAt: now,
			UpdatedAt: now,
		})
		if err != nil {
			return nil, err
		}
		result.CredentialID = id
		result.Pool = PoolMainSystem
		result.Role = role
	}

	result.EmailSent = s.sendCredentials(email, password, result.Role)
	return result, nil
}

// ProvisionClient creates client-app credentials for a persisted client
// profile.
func (s *ProvisioningService) ProvisionClient(ctx context.Context, client *models.Client) (*ProvisionResult, error) {
	email := normalizeEmail(client.EmailAddress())
	if email == "" {
		return nil, ErrEmailRequired
	}

	password, err := utils.GenerateSecurePassword(utils.DefaultPasswordLength)
	if err != nil {
		return nil, err
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	id, err := s.store.InsertClientCredentials(ctx, &models.ClientCredentials{
		Email:                email,
		PasswordHash:         hash,
		ClientProfileID:      client.ID,
		Role:                 models.RoleClient,
		Status:               models.StatusActive,
		IsSeparateCredential: true,
		TargetApp:            TargetAppClient,
		CreatedAt:            now,
		UpdatedAt:            now,
	})
	if err != nil {
		return nil, err
	}

	result := &ProvisionResult{
		CredentialID: id,
		Pool:         PoolClientApp,
		Role:         models.RoleClient,
	}
	result.EmailSent = s.sendCredentials(email, password, models.RoleClient)
	return result, nil
}

// sendCredentials is the only step allowed to swallow its own failure: the
// credential record already exists and the operation must still succeed.
func (s *ProvisioningService) sendCredentials(email, password, role string) bool {
	if err := s.mailer.SendCredentials(email, password, role); err != nil {
		log.Printf("Failed to send credentials email to %s: %v", email, err)
		return false
	}
	return true
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
