package handlers

import (
	"context"
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

func validVisitStatus(status string) bool {
	switch status {
	case models.VisitScheduled, models.VisitInProgress, models.VisitCompleted, models.VisitCancelled:
		return true
	}
	return false
}

// CreateVisit books a dated visit for the caregiver app.
func CreateVisit(w http.ResponseWriter, r *http.Request) {
	var visit models.VisitBooking
	if !decodeBody(w, r, &visit) {
		return
	}

	var errs []string
	if visit.ClientID == "" {
		errs = append(errs, "Client id is required")
	}
	if visit.CaregiverID == "" {
		errs = append(errs, "Caregiver id is required")
	}
	if visit.AppointmentDate.IsZero() {
		errs = append(errs, "Appointment date is required")
	}
	if visit.StartTime == "" || visit.EndTime == "" {
		errs = append(errs, "Start and end time are required")
	}
	if len(errs) > 0 {
		writeValidationError(w, errs)
		return
	}

	visit.ID = primitive.NilObjectID
	if visit.Status == "" {
		visit.Status = models.VisitScheduled
	}
	if !validVisitStatus(visit.Status) {
		writeError(w, http.StatusBadRequest, "Invalid status")
		return
	}
	visit.EVV = models.EVV{}
	visit.CreatedAt = time.Now()

	ctx, cancel := requestContext(r)
	defer cancel()

	res, err := database.DB.Collection("visit_bookings").InsertOne(ctx, &visit)
	if err != nil {
		writeServerError(w, "CreateVisit", err)
		return
	}
	visit.ID, _ = res.InsertedID.(primitive.ObjectID)

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"data":    visit,
	})
}

// GetVisits lists visit bookings filtered by caregiverId, clientId, status
// and/or a single calendar date.
func GetVisits(w http.ResponseWriter, r *http.Request) {
	filter := bson.M{}
	if caregiverID := r.URL.Query().Get("caregiverId"); caregiverID != "" {
		filter["caregiverId"] = caregiverID
	}
	if clientID := r.URL.Query().Get("clientId"); clientID != "" {
		filter["clientId"] = clientID
	}
	if status := r.URL.Query().Get("status"); status != "" {
		filter["status"] = status
	}
	if date := r.URL.Query().Get("date"); date != "" {
		day, err := time.Parse("2006-01-02", date)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
			return
		}
		filter["appointmentDate"] = bson.M{
			"$gte": day,
			"$lt":  day.AddDate(0, 0, 1),
		}
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "appointmentDate", Value: 1}})
	cursor, err := database.DB.Collection("visit_bookings").Find(ctx, filter, opts)
	if err != nil {
		writeServerError(w, "GetVisits", err)
		return
	}

	visits := []models.VisitBooking{}
	if err := cursor.All(ctx, &visits); err != nil {
		writeServerError(w, "GetVisits", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"count":   len(visits),
		"data":    visits,
	})
}

// GetVisit returns one visit booking by id.
func GetVisit(w http.ResponseWriter, r *http.Request) {
	id, ok := objectIDParam(w, r)
	if !ok {
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	var visit models.VisitBooking
	err := database.DB.Collection("visit_bookings").FindOne(ctx, bson.M{"_id": id}).Decode(&visit)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			writeError(w, http.StatusNotFound, "Visit not found")
			return
		}
		writeServerError(w, "GetVisit", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "data": visit})
}

// UpdateVisit applies a partial update. EVV timestamps only move through the
// check-in and check-out endpoints.
func UpdateVisit(w http.ResponseWriter, r *http.Request) {
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
		if !validVisitStatus(s) {
			writeError(w, http.StatusBadRequest, "Invalid status")
			return
		}
	}
	delete(update, "_id")
	delete(update, "id")
	delete(update, "evv")
	delete(update, "createdAt")

	ctx, cancel := requestContext(r)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var visit models.VisitBooking
	err := database.DB.Collection("visit_bookings").
		FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": update}, opts).
		Decode(&visit)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			writeError(w, http.StatusNotFound, "Visit not found")
			return
		}
		writeServerError(w, "UpdateVisit", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "data": visit})
}

// DeleteVisit removes a visit booking.
func DeleteVisit(w http.ResponseWriter, r *http.Request) {
	id, ok := objectIDParam(w, r)
	if !ok {
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	res, err := database.DB.Collection("visit_bookings").DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		writeServerError(w, "DeleteVisit", err)
		return
	}
	if res.DeletedCount == 0 {
		writeError(w, http.StatusNotFound, "Visit not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Visit deleted successfully",
	})
}

// CheckInVisit stamps the EVV check-in time and moves the visit to
// in-progress. Checking in twice is rejected.
func CheckInVisit(w http.ResponseWriter, r *http.Request) {
	id, ok := objectIDParam(w, r)
	if !ok {
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	now := time.Now()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var visit models.VisitBooking
	err := database.DB.Collection("visit_bookings").FindOneAndUpdate(ctx,
		bson.M{"_id": id, "evv.checkIn": bson.M{"$exists": false}},
		bson.M{"$set": bson.M{"evv.checkIn": now, "status": models.VisitInProgress}},
		opts,
	).Decode(&visit)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			visitCheckConflict(w, ctx, id, "Visit already checked in")
			return
		}
		writeServerError(w, "CheckInVisit", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "data": visit})
}

// CheckOutVisit stamps the EVV check-out time, marks the trail verified and
// completes the visit. Requires a prior check-in.
func CheckOutVisit(w http.ResponseWriter, r *http.Request) {
	id, ok := objectIDParam(w, r)
	if !ok {
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	now := time.Now()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var visit models.VisitBooking
	err := database.DB.Collection("visit_bookings").FindOneAndUpdate(ctx,
		bson.M{
			"_id":          id,
			"evv.checkIn":  bson.M{"$exists": true},
			"evv.checkOut": bson.M{"$exists": false},
		},
		bson.M{"$set": bson.M{
			"evv.checkOut": now,
			"evv.verified": true,
			"status":       models.VisitCompleted,
		}},
		opts,
	).Decode(&visit)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			visitCheckConflict(w, ctx, id, "Visit must be checked in first and not already checked out")
			return
		}
		writeServerError(w, "CheckOutVisit", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "data": visit})
}

// visitCheckConflict distinguishes a missing visit from one in the wrong EVV
// state after a guarded update matched nothing.
func visitCheckConflict(w http.ResponseWriter, ctx context.Context, id primitive.ObjectID, conflictMessage string) {
	count, err := database.DB.Collection("visit_bookings").CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		writeServerError(w, "CheckVisit", err)
		return
	}
	if count == 0 {
		writeError(w, http.StatusNotFound, "Visit not found")
		return
	}
	writeError(w, http.StatusBadRequest, conflictMessage)
}
