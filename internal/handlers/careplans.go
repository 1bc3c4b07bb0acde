package handlers

import (
	"errors"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/careflowcentral/careflow-backend/internal/database"
	"github.com/careflowcentral/careflow-backend/internal/models"
)

func validCarePlanStatus(status string) bool {
	switch status {
	case models.CarePlanPending, models.CarePlanInProgress, models.CarePlanCompleted, models.CarePlanCancelled:
		return true
	}
	return false
}

// CreateCarePlan creates a care plan for a patient. The caregiver assignment
// is optional at creation time.
func CreateCarePlan(w http.ResponseWriter, r *http.Request) {
	var plan models.CarePlan
	if !decodeBody(w, r, &plan) {
		return
	}

	var errs []string
	if plan.Patient.IsZero() {
		errs = append(errs, "Patient is required")
	}
	if plan.Title == "" {
		errs = append(errs, "Title is required")
	}
	if len(errs) > 0 {
		writeValidationError(w, errs)
		return
	}

	plan.ID = primitive.NilObjectID
	if plan.Status == "" {
		plan.Status = models.CarePlanPending
	}
	if !validCarePlanStatus(plan.Status) {
		writeError(w, http.StatusBadRequest, "Invalid status")
		return
	}
	now := time.Now()
	plan.CreatedAt = now
	plan.UpdatedAt = now

	ctx, cancel := requestContext(r)
	defer cancel()

	res, err := database.DB.Collection("care_plans").InsertOne(ctx, &plan)
	if err != nil {
		writeServerError(w, "CreateCarePlan", err)
		return
	}
	plan.ID, _ = res.InsertedID.(primitive.ObjectID)

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"data":    plan,
	})
}

// GetCarePlans lists care plans filtered by patientId, caregiverId and/or
// status.
func GetCarePlans(w http.ResponseWriter, r *http.Request) {
	filter := bson.M{}
	if patientID := r.URL.Query().Get("patientId"); patientID != "" {
		oid, err := primitive.ObjectIDFromHex(patientID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid patientId")
			return
		}
		filter["patient"] = oid
	}
	if caregiverID := r.URL.Query().Get("caregiverId"); caregiverID != "" {
		oid, err := primitive.ObjectIDFromHex(caregiverID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid caregiverId")
			return
		}
		filter["assignedCaregiver"] = oid
	}
	if status := r.URL.Query().Get("status"); status != "" {
		filter["status"] = status
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := database.DB.Collection("care_plans").Find(ctx, filter, opts)
	if err != nil {
		writeServerError(w, "GetCarePlans", err)
		return
	}

	plans := []models.CarePlan{}
	if err := cursor.All(ctx, &plans); err != nil {
		writeServerError(w, "GetCarePlans", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"count":   len(plans),
		"data":    plans,
	})
}

// GetCarePlan returns one care plan by id.
func GetCarePlan(w http.ResponseWriter, r *http.Request) {
	id, ok := objectIDParam(w, r)
	if !ok {
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	var plan models.CarePlan
	err := database.DB.Collection("care_plans").FindOne(ctx, bson.M{"_id": id}).Decode(&plan)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			writeError(w, http.StatusNotFound, "Care plan not found")
			return
		}
		writeServerError(w, "GetCarePlan", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "data": plan})
}

// UpdateCarePlan applies a partial update.
func UpdateCarePlan(w http.ResponseWriter, r *http.Request) {
	id, ok := objectIDParam(w, r)
	if !ok {
		return
	}

	var update bson.M
	if !decodeBody(w, r, &update) {
		return
	}
	if status, present := update["status"]; present {
		s, _ := status.(string)
		if !validCarePlanStatus(s) {
			writeError(w, http.StatusBadRequest, "Invalid status")
			return
		}
	}
	delete(update, "_id")
	delete(update, "id")
	delete(update, "createdAt")
	update["updatedAt"] = time.Now()

	ctx, cancel := requestContext(r)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var plan models.CarePlan
	err := database.DB.Collection("care_plans").
		FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": update}, opts).
		Decode(&plan)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			writeError(w, http.StatusNotFound, "Care plan not found")
			return
		}
		writeServerError(w, "UpdateCarePlan", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "data": plan})
}

// DeleteCarePlan removes a care plan.
func DeleteCarePlan(w http.ResponseWriter, r *http.Request) {
	id, ok := objectIDParam(w, r)
	if !ok {
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	res, err := database.DB.Collection("care_plans").DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		writeServerError(w, "DeleteCarePlan", err)
		return
	}
	if res.DeletedCount == 0 {
		writeError(w, http.StatusNotFound, "Care plan not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Care plan deleted successfully",
	})
}
