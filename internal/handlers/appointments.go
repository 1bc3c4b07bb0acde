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
	"github.com/careflowcentral/careflow-backend/internal/middleware"
	"github.com/careflowcentral/careflow-backend/internal/models"
)

type appointmentRequest struct {
	Client        string    `json:"client"`
	Caregiver     string    `json:"caregiver"`
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
	DurationHours float64   `json:"durationHours"`
	Status        string    `json:"status"`
	Notes         string    `json:"notes"`
}

func validAppointmentStatus(status string) bool {
	switch status {
	case models.AppointmentScheduled, models.AppointmentCompleted, models.AppointmentCancelled:
		return true
	}
	return false
}

// CreateAppointment schedules a visit pairing a client with a caregiver.
// When end is omitted it is derived from start plus durationHours.
func CreateAppointment(w http.ResponseWriter, r *http.Request) {
	var req appointmentRequest
	if !decodeBody(w, r, &req) {
		return
	}

	var errs []string
	clientID, err := primitive.ObjectIDFromHex(req.Client)
	if err != nil {
		errs = append(errs, "Valid client is required")
	}
	caregiverID, err := primitive.ObjectIDFromHex(req.Caregiver)
	if err != nil {
		errs = append(errs, "Valid caregiver is required")
	}
	if req.Start.IsZero() {
		errs = append(errs, "Start time is required")
	}
	if len(errs) > 0 {
		writeValidationError(w, errs)
		return
	}

	end := req.End
	duration := req.DurationHours
	switch {
	case end.IsZero() && duration > 0:
		end = req.Start.Add(time.Duration(duration * float64(time.Hour)))
	case end.IsZero():
		writeError(w, http.StatusBadRequest, "Either end time or durationHours is required")
		return
	case !end.After(req.Start):
		writeError(w, http.StatusBadRequest, "End time must be after start time")
		return
	default:
		duration = end.Sub(req.Start).Hours()
	}

	status := req.Status
	if status == "" {
		status = models.AppointmentScheduled
	}
	if !validAppointmentStatus(status) {
		writeError(w, http.StatusBadRequest, "Invalid status")
		return
	}

	now := time.Now()
	appointment := &models.Appointment{
		Client:        clientID,
		Caregiver:     caregiverID,
		Start:         req.Start,
		End:           end,
		DurationHours: duration,
		Status:        status,
		Notes:         req.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if user, ok := middleware.AuthUserFromContext(r.Context()); ok {
		appointment.CreatedBy = user.ID
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	res, err := database.DB.Collection("appointments").InsertOne(ctx, appointment)
	if err != nil {
		writeServerError(w, "CreateAppointment", err)
		return
	}
	appointment.ID, _ = res.InsertedID.(primitive.ObjectID)

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"data":    appointment,
	})
}

// GetAppointments lists appointments filtered by clientId, caregiverId
// and/or status, newest first.
func GetAppointments(w http.ResponseWriter, r *http.Request) {
	filter := bson.M{}
	if clientID := r.URL.Query().Get("clientId"); clientID != "" {
		oid, err := primitive.ObjectIDFromHex(clientID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid clientId")
			return
		}
		filter["client"] = oid
	}
	if caregiverID := r.URL.Query().Get("caregiverId"); caregiverID != "" {
		oid, err := primitive.ObjectIDFromHex(caregiverID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid caregiverId")
			return
		}
		filter["caregiver"] = oid
	}
	if status := r.URL.Query().Get("status"); status != "" {
		filter["status"] = status
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "start", Value: -1}})
	cursor, err := database.DB.Collection("appointments").Find(ctx, filter, opts)
	if err != nil {
		writeServerError(w, "GetAppointments", err)
		return
	}

	appointments := []models.Appointment{}
	if err := cursor.All(ctx, &appointments); err != nil {
		writeServerError(w, "GetAppointments", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"count":   len(appointments),
		"data":    appointments,
	})
}

// GetAppointment returns one appointment by id.
func GetAppointment(w http.ResponseWriter, r *http.Request) {
	id, ok := objectIDParam(w, r)
	if !ok {
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	var appointment models.Appointment
	err := database.DB.Collection("appointments").FindOne(ctx, bson.M{"_id": id}).Decode(&appointment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			writeError(w, http.StatusNotFound, "Appointment not found")
			return
		}
		writeServerError(w, "GetAppointment", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "data": appointment})
}

// UpdateAppointment applies a partial update. Status values outside the
// known set are rejected.
func UpdateAppointment(w http.ResponseWriter, r *http.Request) {
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
		if !validAppointmentStatus(s) {
			writeError(w, http.StatusBadRequest, "Invalid status")
			return
		}
	}
	delete(update, "_id")
	delete(update, "id")
	delete(update, "createdBy")
	delete(update, "createdAt")
	update["updatedAt"] = time.Now()

	ctx, cancel := requestContext(r)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var appointment models.Appointment
	err := database.DB.Collection("appointments").
		FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": update}, opts).
		Decode(&appointment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			writeError(w, http.StatusNotFound, "Appointment not found")
			return
		}
		writeServerError(w, "UpdateAppointment", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "data": appointment})
}

// DeleteAppointment removes an appointment.
func DeleteAppointment(w http.ResponseWriter, r *http.Request) {
	id, ok := objectIDParam(w, r)
	if !ok {
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	res, err := database.DB.Collection("appointments").DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		writeServerError(w, "DeleteAppointment", err)
		return
	}
	if res.DeletedCount == 0 {
		writeError(w, http.StatusNotFound, "Appointment not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Appointment deleted successfully",
	})
}
