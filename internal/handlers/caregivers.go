package handlers

import (
	"errors"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/careflowcentral/careflow-backend/internal/database"
	"github.com/careflowcentral/careflow-backend/internal/middleware"
	"github.com/careflowcentral/careflow-backend/internal/models"
	"github.com/careflowcentral/careflow-backend/internal/services"
)

// GetAllCaregivers lists the caregiver pool without password hashes.
func GetAllCaregivers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	opts := options.Find().SetProjection(bson.M{"passwordHash": 0})
	cursor, err := database.DB.Collection("caregivers").Find(ctx, bson.M{}, opts)
	if err != nil {
		writeServerError(w, "GetAllCaregivers", err)
		return
	}

	caregivers := []models.Caregiver{}
	if err := cursor.All(ctx, &caregivers); err != nil {
		writeServerError(w, "GetAllCaregivers", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"count":   len(caregivers),
		"data":    caregivers,
	})
}

// GetCaregiverMe returns the authenticated caregiver's own record.
func GetCaregiverMe(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.AuthUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authorized, no token")
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	opts := options.FindOne().SetProjection(bson.M{"passwordHash": 0})
	var caregiver models.Caregiver
	err := database.DB.Collection("caregivers").FindOne(ctx, bson.M{"_id": user.ID}, opts).Decode(&caregiver)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			writeError(w, http.StatusNotFound, "Caregiver not found")
			return
		}
		writeServerError(w, "GetCaregiverMe", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "data": caregiver})
}

// GetAvailableCaregivers returns the caregivers free at a given clock time
// today. The time query parameter uses the "h:mm a" format, e.g. 9:30 AM.
// The day is always the server's current weekday.
func GetAvailableCaregivers(w http.ResponseWriter, r *http.Request) {
	timeParam := r.URL.Query().Get("time")
	if timeParam == "" {
		writeError(w, http.StatusBadRequest, "Time parameter is required")
		return
	}

	minuteOfDay, err := services.ParseVisitTime(timeParam)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	opts := options.Find().SetProjection(bson.M{"passwordHash": 0})
	cursor, err := database.DB.Collection("caregivers").Find(ctx, bson.M{}, opts)
	if err != nil {
		writeServerError(w, "GetAvailableCaregivers", err)
		return
	}
	caregivers := []models.Caregiver{}
	if err := cursor.All(ctx, &caregivers); err != nil {
		writeServerError(w, "GetAvailableCaregivers", err)
		return
	}

	dayIndex := int(time.Now().Weekday())
	shiftCursor, err := database.DB.Collection("shifts").Find(ctx, bson.M{"dayIndex": dayIndex})
	if err != nil {
		writeServerError(w, "GetAvailableCaregivers", err)
		return
	}
	shifts := []models.Shift{}
	if err := shiftCursor.All(ctx, &shifts); err != nil {
		writeServerError(w, "GetAvailableCaregivers", err)
		return
	}

	available := services.FilterAvailable(caregivers, shifts, minuteOfDay)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"count":   len(available),
		"data":    available,
	})
}
