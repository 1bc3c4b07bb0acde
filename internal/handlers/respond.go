package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/careflowcentral/careflow-backend/internal/services"
)

// Services injected at bootstrap.
var (
	provisioningService *services.ProvisioningService
	cloudinaryService   *services.CloudinaryService
	mailerService       services.CredentialsMailer
)

// InitProvisioning wires the credential provisioning workflow into the
// profile handlers.
func InitProvisioning(svc *services.ProvisioningService) {
	provisioningService = svc
}

// InitCloudinary wires the upload service into the onboarding and upload
// handlers.
func InitCloudinary(svc *services.CloudinaryService) {
	cloudinaryService = svc
}

// InitMailer wires the credentials mailer used by password resets.
func InitMailer(m services.CredentialsMailer) {
	mailerService = m
}

const dbTimeout = 5 * time.Second

func requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), dbTimeout)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{
		"success": false,
		"message": message,
	})
}

func writeValidationError(w http.ResponseWriter, errs []string) {
	writeJSON(w, http.StatusBadRequest, map[string]interface{}{
		"success": false,
		"message": "Validation failed",
		"errors":  errs,
	})
}

// writeServerError logs the cause and returns a generic 500. Internals never
// reach the response body.
func writeServerError(w http.ResponseWriter, operation string, err error) {
	log.Printf("%s failed: %v", operation, err)
	writeError(w, http.StatusInternalServerError, "Server error")
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// objectIDParam parses the chi URL parameter "id" and writes a 400 on
// malformed input.
func objectIDParam(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid id")
		return primitive.NilObjectID, false
	}
	return id, true
}
