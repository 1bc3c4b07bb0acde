package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/careflowcentral/careflow-backend/internal/models"
	"github.com/careflowcentral/careflow-backend/pkg/utils"
)

type fakeCredentialStore struct {
	users          []*models.User
	caregiverCreds []*models.CaregiverCredentials
	clientCreds    []*models.ClientCredentials
	insertErr      error
}

func (f *fakeCredentialStore) InsertUser(_ context.Context, user *models.User) (primitive.ObjectID, error) {
	if f.insertErr != nil {
		return primitive.NilObjectID, f.insertErr
	}
	f.users = append(f.users, user)
	return primitive.NewObjectID(), nil
}

func (f *fakeCredentialStore) InsertCaregiverCredentials(_ context.Context, creds *models.CaregiverCredentials) (primitive.ObjectID, error) {
	if f.insertErr != nil {
		return primitive.NilObjectID, f.insertErr
	}
	f.caregiverCreds = append(f.caregiverCreds, creds)
	return primitive.NewObjectID(), nil
}

func (f *fakeCredentialStore) InsertClientCredentials(_ context.Context, creds *models.ClientCredentials) (primitive.ObjectID, error) {
	if f.insertErr != nil {
		return primitive.NilObjectID, f.insertErr
	}
	f.clientCreds = append(f.clientCreds, creds)
	return primitive.NewObjectID(), nil
}

type fakeMailer struct {
	sent []sentMail
	err  error
}

type sentMail struct {
	to       string
	password string
	role     string
}

func (f *fakeMailer) SendCredentials(to, password, role string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMail{to: to, password: password, role: role})
	return nil
}

func staffProfile(position, email string) *models.StaffProfile {
	profile := &models.StaffProfile{ID: primitive.NewObjectID()}
	profile.PersonalInformation.FullName = models.FullName{FirstName: "Dana", LastName: "Reyes"}
	profile.PersonalInformation.ContactDetails = models.ContactDetails{
		PrimaryPhone: "555-0100",
		EmailAddress: email,
	}
	profile.ProfessionalDetails.PositionAppliedFor = position
	return profile
}

func clientProfile(email string) *models.Client {
	client := &models.Client{ID: primitive.NewObjectID()}
	client.PersonalInfo = models.ClientPersonalInfo{FirstName: "Marta", LastName: "Silva"}
	client.ContactDetails.Email = email
	return client
}

func TestProvisionStaff_CaregiverGoesToSeparatePool(t *testing.T) {
	store := &fakeCredentialStore{}
	mailer := &fakeMailer{}
	svc := NewProvisioningService(store, mailer)

	profile := staffProfile("Caregiver", "Dana.Reyes@Example.com")
	result, err := svc.ProvisionStaff(context.Background(), profile)
	require.NoError(t, err)

	assert.Equal(t, PoolCaregiverSeparate, result.Pool)
	assert.Equal(t, models.RoleCaregiver, result.Role)
	assert.True(t, result.EmailSent)
	assert.Empty(t, store.users)
	require.Len(t, store.caregiverCreds, 1)

	creds := store.caregiverCreds[0]
	assert.Equal(t, "dana.reyes@example.com", creds.Email, "email is lowercased")
	assert.Equal(t, profile.ID, creds.StaffProfileID)
	assert.Equal(t, models.StatusActive, creds.Status)
	assert.Equal(t, TargetAppCaregiver, creds.TargetApp)
	assert.True(t, creds.IsSeparateCredential)
}

func TestProvisionStaff_NonCaregiverGoesToMainPool(t *testing.T) {
	store := &fakeCredentialStore{}
	mailer := &fakeMailer{}
	svc := NewProvisioningService(store, mailer)

	profile := staffProfile("Nurse", "nurse@example.com")
	result, err := svc.ProvisionStaff(context.Background(), profile)
	require.NoError(t, err)

	assert.Equal(t, PoolMainSystem, result.Pool)
	assert.Equal(t, "nurse", result.Role)
	assert.Empty(t, store.caregiverCreds)
	require.Len(t, store.users, 1)

	user := store.users[0]
	assert.Equal(t, "nurse", user.Role)
	ref, ok := user.Profile.(models.UserProfileRef)
	require.True(t, ok)
	assert.Equal(t, profile.ID, ref.StaffID)
	assert.Equal(t, "Dana", ref.FirstName)
}

func TestProvisionStaff_BlankPositionDefaultsToStaffRole(t *testing.T) {
	store := &fakeCredentialStore{}
	svc := NewProvisioningService(store, &fakeMailer{})

	result, err := svc.ProvisionStaff(context.Background(), staffProfile("", "someone@example.com"))
	require.NoError(t, err)
	assert.Equal(t, models.RoleStaff, result.Role)
}

func TestProvisionStaff_MissingEmailIsHardError(t *testing.T) {
	store := &fakeCredentialStore{}
	mailer := &fakeMailer{}
	svc := NewProvisioningService(store, mailer)

	_, err := svc.ProvisionStaff(context.Background(), staffProfile("Caregiver", "   "))
	assert.ErrorIs(t, err, ErrEmailRequired)
	assert.Empty(t, store.caregiverCreds, "no credential record on missing email")
	assert.Empty(t, store.users)
	assert.Empty(t, mailer.sent)
}

func TestProvisionStaff_DuplicateEmailSurfacesConflict(t *testing.T) {
	store := &fakeCredentialStore{insertErr: ErrEmailExists}
	mailer := &fakeMailer{}
	svc := NewProvisioningService(store, mailer)

	_, err := svc.ProvisionStaff(context.Background(), staffProfile("Caregiver", "dup@example.com"))
	assert.ErrorIs(t, err, ErrEmailExists)
	assert.Empty(t, mailer.sent, "no email after a failed credential insert")
}

func TestProvisionStaff_MailFailureDoesNotFailProvisioning(t *testing.T) {
	store := &fakeCredentialStore{}
	mailer := &fakeMailer{err: errors.New("smtp: connection refused")}
	svc := NewProvisioningService(store, mailer)

	result, err := svc.ProvisionStaff(context.Background(), staffProfile("Caregiver", "dana@example.com"))
	require.NoError(t, err, "mail failure must never fail provisioning")
	assert.False(t, result.EmailSent)
	assert.Len(t, store.caregiverCreds, 1, "credential record still created")
}

func TestProvisionStaff_MailedPasswordMatchesStoredHash(t *testing.T) {
	store := &fakeCredentialStore{}
	mailer := &fakeMailer{}
	svc := NewProvisioningService(store, mailer)

	_, err := svc.ProvisionStaff(context.Background(), staffProfile("Caregiver", "dana@example.com"))
	require.NoError(t, err)
	require.Len(t, mailer.sent, 1)
	require.Len(t, store.caregiverCreds, 1)

	mail := mailer.sent[0]
	assert.Equal(t, "dana@example.com", mail.to)
	assert.Len(t, mail.password, utils.DefaultPasswordLength)
	assert.NotEqual(t, mail.password, store.caregiverCreds[0].PasswordHash, "plaintext never persisted")
	assert.True(t, utils.CheckPassword(mail.password, store.caregiverCreds[0].PasswordHash))
}

func TestProvisionClient(t *testing.T) {
	store := &fakeCredentialStore{}
	mailer := &fakeMailer{}
	svc := NewProvisioningService(store, mailer)

	client := clientProfile("Marta@Example.com")
	result, err := svc.ProvisionClient(context.Background(), client)
	require.NoError(t, err)

	assert.Equal(t, PoolClientApp, result.Pool)
	assert.Equal(t, models.RoleClient, result.Role)
	require.Len(t, store.clientCreds, 1)
	assert.Equal(t, "marta@example.com", store.clientCreds[0].Email)
	assert.Equal(t, client.ID, store.clientCreds[0].ClientProfileID)

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, models.RoleClient, mailer.sent[0].role)
}

func TestProvisionClient_MissingEmailIsHardError(t *testing.T) {
	store := &fakeCredentialStore{}
	svc := NewProvisioningService(store, &fakeMailer{})

	_, err := svc.ProvisionClient(context.Background(), clientProfile(""))
	assert.ErrorIs(t, err, ErrEmailRequired)
	assert.Empty(t, store.clientCreds)
}
