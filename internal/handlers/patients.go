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
)

// CreatePatient persists a patient record. Patients never get login
// credentials, so there is no provisioning step here.
func CreatePatient(w http.ResponseWriter, r *http.Request) {
	var patient models.Patient
	if !decodeBody(w, r, &patient) {
		return
	}

	var errs []string
	if patient.PersonalInfo.FirstName == "" {
		errs = append(errs, "First name is required")
	}
	if patient.PersonalInfo.LastName == "" {
		errs = append(errs, "Last name is required")
	}
	if len(errs) > 0 {
		writeValidationError(w, errs)
		return
	}

	now := time.Now()
	patient.ID = primitive.NilObjectID
	if patient.Status == "" {
		patient.Status = models.ClientStatusActive
	}
	if user, ok := middleware.AuthUserFromContext(r.Context()); ok {
		patient.CreatedBy = user.ID
	}
	patient.CreatedAt = now
	patient.UpdatedAt = now

	ctx, cancel := requestContext(r)
	defer cancel()

	res, err := database.DB.Collection("patients").InsertOne(ctx, &patient)
	if err != nil {
		writeServerError(w, "CreatePatient", err)
		return
	}
	patient.ID, _ = res.InsertedID.(primitive.ObjectID)

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"data":    patient,
	})
}

// GetPatients lists patients with pagination, optional status filter,
// optional clientId filter and a name search.
func GetPatients(w http.ResponseWriter, r *http.Request) {
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
	if clientID := r.URL.Query().Get("clientId"); clientID != "" {
		oid, err := primitive.ObjectIDFromHex(clientID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid clientId")
			return
		}
		filter["clientId"] = oid
	}
	if search := r.URL.Query().Get("search"); search != "" {
		regex := primitive.Regex{Pattern: search, Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"personalInfo.firstName": regex},
			bson.M{"personalInfo.lastName": regex},
		}
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	collection := database.DB.Collection("patients")
	total, err := collection.CountDocuments(ctx, filter)
	if err != nil {
		writeServerError(w, "GetPatients", err)
		return
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))
	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		writeServerError(w, "GetPatients", err)
		return
	}

	patients := []models.Patient{}
	if err := cursor.All(ctx, &patients); err != nil {
		writeServerError(w, "GetPatients", err)
		return
	}

	totalPages := (total + int64(limit) - 1) / int64(limit)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":     true,
		"count":       len(patients),
		"total":       total,
		"totalPages":  totalPages,
		"currentPage": page,
		"data":        patients,
	})
}

// GetPatient returns one patient by id.
func GetPatient(w http.ResponseWriter, r *http.Request) {
	id, ok := objectIDParam(w, r)
	if !ok {
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	var patient models.Patient
	err := database.DB.Collection("patients").FindOne(ctx, bson.M{"_id": id}).Decode(&patient)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			writeError(w, http.StatusNotFound, "Patient not found")
			return
		}
		writeServerError(w, "GetPatient", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "data": patient})
}

// UpdatePatient applies a partial update.
func UpdatePatient(w http.ResponseWriter, r *http.Request) {
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
	var patient models.Patient
	err := database.DB.Collection("patients").
		FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": update}, opts).
		Decode(&patient)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			writeError(w, http.StatusNotFound, "Patient not found")
			return
		}
		writeServerError(w, "UpdatePatient", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "data": patient})
}

// DeletePatient removes a patient record.
func DeletePatient(w http.ResponseWriter, r *http.Request) {
	id, ok := objectIDParam(w, r)
	if !ok {
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	res, err := database.DB.Collection("patients").DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		writeServerError(w, "DeletePatient", err)
		return
	}
	if res.DeletedCount == 0 {
		writeError(w, http.StatusNotFound, "Patient not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Patient deleted successfully",
	})
}
