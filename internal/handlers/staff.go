package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/careflowcentral/careflow-backend/internal/database"
	"github.com/careflowcentral/careflow-backend/internal/middleware"
	"github.com/careflowcentral/careflow-backend/internal/models"
	"github.com/careflowcentral/careflow-backend/internal/services"
)

// CreateStaff persists a staff profile and provisions login credentials in
// the pool matching the applied-for position.
func CreateStaff(w http.ResponseWriter, r *http.Request) {
	var profile models.StaffProfile
	if !decodeBody(w, r, &profile) {
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

	now := time.Now()
	profile.ID = primitive.NilObjectID
	if profile.Status == "" {
		profile.Status = models.StaffStatusPendingReview
	}
	if profile.SubmissionTimestamp.IsZero() {
		profile.SubmissionTimestamp = now
	}
	if user, ok := middleware.AuthUserFromContext(r.Context()); ok {
		profile.CreatedBy = user.ID
	}
	profile.CreatedAt = now
	profile.UpdatedAt = now

	ctx, cancel := requestContext(r)
	defer cancel()

	res, err := database.DB.Collection("staff_profiles").InsertOne(ctx, &profile)
	if err != nil {
		writeServerError(w, "CreateStaff", err)
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
			writeServerError(w, "CreateStaff", err)
		}
		return
	}

	message := "Staff member created successfully. Login credentials have been sent to their email."
	if !result.EmailSent {
		message = "Staff member created successfully, but the credentials email could not be sent."
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success":        true,
		"data":           profile,
		"userId":         result.CredentialID,
		"credentialType": result.Pool,
		"message":        message,
	})
}

// GetAllStaff lists staff profiles with pagination, an optional status
// filter, an optional position filter and a name/email search.
func GetAllStaff(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 {
		limit = 10
	}

	filter := bson.M{}
	if status := r.URL.Query().Get("status"); status != "" {
		filter["status"] = status
	}
	if position := r.URL.Query().Get("position"); position != "" {
		filter["professionalDetails.positionAppliedFor"] = primitive.Regex{Pattern: position, Options: "i"}
	}
	if search := r.URL.Query().Get("search"); search != "" {
		regex := primitive.Regex{Pattern: search, Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"personalInformation.fullName.firstName": regex},
			bson.M{"personalInformation.fullName.lastName": regex},
			bson.M{"personalInformation.contactDetails.emailAddress": regex},
		}
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	collection := database.DB.Collection("staff_profiles")
	total, err := collection.CountDocuments(ctx, filter)
	if err != nil {
		writeServerError(w, "GetAllStaff", err)
		return
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))
	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		writeServerError(w, "GetAllStaff", err)
		return
	}

	staff := []models.StaffProfile{}
	if err := cursor.All(ctx, &staff); err != nil {
		writeServerError(w, "GetAllStaff", err)
		return
	}

	totalPages := (total + int64(limit) - 1) / int64(limit)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":     true,
		"count":       len(staff),
		"total":       total,
		"totalPages":  totalPages,
		"currentPage": page,
		"data":        staff,
	})
}

// GetStaff returns one staff profile by id.
func GetStaff(w http.ResponseWriter, r *http.Request) {
	id, ok := objectIDParam(w, r)
	if !ok {
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	var profile models.StaffProfile
	err := database.DB.Collection("staff_profiles").FindOne(ctx, bson.M{"_id": id}).Decode(&profile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			writeError(w, http.StatusNotFound, "Staff member not found")
			return
		}
		writeServerError(w, "GetStaff", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "data": profile})
}

// UpdateStaff applies a partial update to a staff profile.
func UpdateStaff(w http.ResponseWriter, r *http.Request) {
	id, ok := objectIDParam(w, r)
	if !ok {
		return
	}

	var update bson.M
	if !decodeBody(w, r, &update) {
		return
	}
	delete(update, "_id")
	delete(update, "id")
	delete(update, "createdBy")
	delete(update, "createdAt")
	update["updatedAt"] = time.Now()

	ctx, cancel := requestContext(r)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var profile models.StaffProfile
	err := database.DB.Collection("staff_profiles").
		FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": update}, opts).
		Decode(&profile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			writeError(w, http.StatusNotFound, "Staff member not found")
			return
		}
		writeServerError(w, "UpdateStaff", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "data": profile})
}

// DeleteStaff removes a staff profile. Any credentials provisioned from it
// remain until deleted through user management.
func DeleteStaff(w http.ResponseWriter, r *http.Request) {
	id, ok := objectIDParam(w, r)
	if !ok {
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	res, err := database.DB.Collection("staff_profiles").DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		writeServerError(w, "DeleteStaff", err)
		return
	}
	if res.DeletedCount == 0 {
		writeError(w, http.StatusNotFound, "Staff member not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Staff member deleted successfully",
	})
}
