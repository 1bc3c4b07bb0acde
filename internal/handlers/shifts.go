package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/careflowcentral/careflow-backend/internal/database"
	"github.com/careflowcentral/careflow-backend/internal/models"
	"github.com/careflowcentral/careflow-backend/internal/services"
)

type shiftRequest struct {
	StaffID   string `json:"staffId"`
	DayIndex  *int   `json:"dayIndex"`
	TimeRange string `json:"timeRange"`
}

// CreateShift records a recurring weekly busy window for a caregiver. The
// time range is validated here so unparsable or overnight ranges never reach
// the availability reader.
func CreateShift(w http.ResponseWriter, r *http.Request) {
	var req shiftRequest
	if !decodeBody(w, r, &req) {
		return
	}

	staffID, err := primitive.ObjectIDFromHex(req.StaffID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Valid staffId is required")
		return
	}
	if req.DayIndex == nil || *req.DayIndex < 0 || *req.DayIndex > 6 {
		writeError(w, http.StatusBadRequest, "dayIndex must be between 0 (Sunday) and 6 (Saturday)")
		return
	}
	if err := services.ValidateTimeRange(req.TimeRange); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	shift := &models.Shift{
		StaffID:   staffID,
		DayIndex:  *req.DayIndex,
		TimeRange: req.TimeRange,
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	res, err := database.DB.Collection("shifts").InsertOne(ctx, shift)
	if err != nil {
		writeServerError(w, "CreateShift", err)
		return
	}
	shift.ID, _ = res.InsertedID.(primitive.ObjectID)

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"data":    shift,
	})
}

// GetShifts lists shifts filtered by staffId and/or dayIndex.
func GetShifts(w http.ResponseWriter, r *http.Request) {
	filter := bson.M{}
	if staffID := r.URL.Query().Get("staffId"); staffID != "" {
		oid, err := primitive.ObjectIDFromHex(staffID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid staffId")
			return
		}
		filter["staffId"] = oid
	}
	if day := r.URL.Query().Get("dayIndex"); day != "" {
		dayIndex, err := strconv.Atoi(day)
		if err != nil || dayIndex < 0 || dayIndex > 6 {
			writeError(w, http.StatusBadRequest, "Invalid dayIndex")
			return
		}
		filter["dayIndex"] = dayIndex
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "dayIndex", Value: 1}, {Key: "timeRange", Value: 1}})
	cursor, err := database.DB.Collection("shifts").Find(ctx, filter, opts)
	if err != nil {
		writeServerError(w, "GetShifts", err)
		return
	}

	shifts := []models.Shift{}
	if err := cursor.All(ctx, &shifts); err != nil {
		writeServerError(w, "GetShifts", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"count":   len(shifts),
		"data":    shifts,
	})
}

// UpdateShift replaces a shift's day and/or time range.
func UpdateShift(w http.ResponseWriter, r *http.Request) {
	id, ok := objectIDParam(w, r)
	if !ok {
		return
	}

	var req shiftRequest
	if !decodeBody(w, r, &req) {
		return
	}

	set := bson.M{}
	if req.DayIndex != nil {
		if *req.DayIndex < 0 || *req.DayIndex > 6 {
			writeError(w, http.StatusBadRequest, "dayIndex must be between 0 (Sunday) and 6 (Saturday)")
			return
		}
		set["dayIndex"] = *req.DayIndex
	}
	if req.TimeRange != "" {
		if err := services.ValidateTimeRange(req.TimeRange); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		set["timeRange"] = req.TimeRange
	}
	if len(set) == 0 {
		writeError(w, http.StatusBadRequest, "Nothing to update")
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var shift models.Shift
	err := database.DB.Collection("shifts").
		FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).
		Decode(&shift)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			writeError(w, http.StatusNotFound, "Shift not found")
			return
		}
		writeServerError(w, "UpdateShift", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "data": shift})
}

// DeleteShift removes a shift.
func DeleteShift(w http.ResponseWriter, r *http.Request) {
	id, ok := objectIDParam(w, r)
	if !ok {
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	res, err := database.DB.Collection("shifts").DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		writeServerError(w, "DeleteShift", err)
		return
	}
	if res.DeletedCount == 0 {
		writeError(w, http.StatusNotFound, "Shift not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Shift deleted successfully",
	})
}
