package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/careflowcentral/careflow-backend/internal/database"
	"github.com/careflowcentral/careflow-backend/internal/middleware"
	"github.com/careflowcentral/careflow-backend/internal/models"
	"github.com/careflowcentral/careflow-backend/pkg/utils"
)

// CaregiverLogin authenticates against the separate caregiver credential
// pool used by the caregiver app.
func CaregiverLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Please provide email and password")
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	var creds models.CaregiverCredentials
	err := database.DB.Collection("caregiver_credentials").FindOne(ctx, bson.M{"email": email}).Decode(&creds)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			writeError(w, http.StatusBadRequest, "Invalid credentials")
			return
		}
		writeServerError(w, "CaregiverLogin", err)
		return
	}

	authenticate(w, ctx, "caregiver_credentials", creds.ID, creds.Email, creds.Role, "", creds.PasswordHash, &creds.LoginLock, req.Password)
}

type updatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// UpdateCaregiverPassword lets an authenticated caregiver rotate their own
// password after verifying the current one.
func UpdateCaregiverPassword(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.AuthUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authorized, no token")
		return
	}

	var req updatePasswordRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if len(req.NewPassword) < 6 {
		writeError(w, http.StatusBadRequest, "New password must be at least 6 characters")
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	collection := database.DB.Collection("caregiver_credentials")
	var creds models.CaregiverCredentials
	if err := collection.FindOne(ctx, bson.M{"_id": user.ID}).Decode(&creds); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			writeError(w, http.StatusNotFound, "Credentials not found")
			return
		}
		writeServerError(w, "UpdateCaregiverPassword", err)
		return
	}

	if !utils.CheckPassword(req.CurrentPassword, creds.PasswordHash) {
		writeError(w, http.StatusBadRequest, "Current password is incorrect")
		return
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		writeServerError(w, "UpdateCaregiverPassword", err)
		return
	}

	_, err = collection.UpdateByID(ctx, creds.ID, bson.M{"$set": bson.M{
		"passwordHash": hash,
		"updatedAt":    time.Now(),
	}})
	if err != nil {
		writeServerError(w, "UpdateCaregiverPassword", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Password updated successfully",
	})
}

type resetPasswordRequest struct {
	Email string `json:"email"`
}

// ResetCaregiverPassword issues a fresh temporary password for a caregiver
// credential and emails it. Admin only; the temporary password never appears
// in the response.
func ResetCaregiverPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if !decodeBody(w, r, &req) {
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		writeError(w, http.StatusBadRequest, "Email is required")
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	collection := database.DB.Collection("caregiver_credentials")
	var creds models.CaregiverCredentials
	if err := collection.FindOne(ctx, bson.M{"email": email}).Decode(&creds); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			writeError(w, http.StatusNotFound, "Credentials not found")
			return
		}
		writeServerError(w, "ResetCaregiverPassword", err)
		return
	}

	temp, err := utils.GenerateTemporaryPassword(utils.DefaultPasswordLength)
	if err != nil {
		writeServerError(w, "ResetCaregiverPassword", err)
		return
	}
	hash, err := utils.HashPassword(temp.Password)
	if err != nil {
		writeServerError(w, "ResetCaregiverPassword", err)
		return
	}

	_, err = collection.UpdateByID(ctx, creds.ID, bson.M{"$set": bson.M{
		"passwordHash":  hash,
		"loginAttempts": 0,
		"updatedAt":     time.Now(),
	}, "$unset": bson.M{"lockUntil": ""}})
	if err != nil {
		writeServerError(w, "ResetCaregiverPassword", err)
		return
	}

	emailSent := true
	if err := mailerService.SendCredentials(email, temp.Password, models.RoleCaregiver); err != nil {
		log.Printf("Failed to send reset email to %s: %v", email, err)
		emailSent = false
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"message":   "Password has been reset",
		"emailSent": emailSent,
	})
}
