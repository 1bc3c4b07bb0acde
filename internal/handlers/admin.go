package handlers

import (
	"net/http"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/careflowcentral/careflow-backend/internal/database"
	"github.com/careflowcentral/careflow-backend/internal/middleware"
	"github.com/careflowcentral/careflow-backend/internal/models"
	"github.com/careflowcentral/careflow-backend/internal/services"
)

type clientSummary struct {
	ID           primitive.ObjectID `bson:"_id" json:"id"`
	PersonalInfo struct {
		FirstName string `bson:"firstName" json:"firstName"`
		LastName  string `bson:"lastName" json:"lastName"`
	} `bson:"personalInfo" json:"personalInfo"`
	Status string `bson:"status" json:"status"`
}

// AdminListClients returns a slim id/name listing for scheduling dropdowns.
func AdminListClients(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	opts := options.Find().
		SetProjection(bson.M{"personalInfo.firstName": 1, "personalInfo.lastName": 1, "status": 1}).
		SetSort(bson.D{{Key: "personalInfo.lastName", Value: 1}})
	cursor, err := database.DB.Collection("clients").Find(ctx, bson.M{"status": models.ClientStatusActive}, opts)
	if err != nil {
		writeServerError(w, "AdminListClients", err)
		return
	}

	rows := []clientSummary{}
	if err := cursor.All(ctx, &rows); err != nil {
		writeServerError(w, "AdminListClients", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"count":   len(rows),
		"data":    rows,
	})
}

// AdminListCaregivers returns a slim id/email/profile listing for scheduling
// dropdowns.
func AdminListCaregivers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	opts := options.Find().SetProjection(bson.M{"email": 1, "profile": 1, "status": 1})
	cursor, err := database.DB.Collection("caregivers").Find(ctx, bson.M{"status": models.StatusActive}, opts)
	if err != nil {
		writeServerError(w, "AdminListCaregivers", err)
		return
	}

	caregivers := []models.Caregiver{}
	if err := cursor.All(ctx, &caregivers); err != nil {
		writeServerError(w, "AdminListCaregivers", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"count":   len(caregivers),
		"data":    caregivers,
	})
}

type adminScheduleRequest struct {
	ClientID      string  `json:"clientId"`
	CaregiverID   string  `json:"caregiverId"`
	Date          string  `json:"date"`
	StartTime     string  `json:"startTime"`
	DurationHours float64 `json:"durationHours"`
	Notes         string  `json:"notes"`
}

// AdminScheduleAppointment creates an appointment from the admin scheduling
// form: a calendar date, a "h:mm a" start time and a duration in hours.
func AdminScheduleAppointment(w http.ResponseWriter, r *http.Request) {
	var req adminScheduleRequest
	if !decodeBody(w, r, &req) {
		return
	}

	var errs []string
	clientID, err := primitive.ObjectIDFromHex(req.ClientID)
	if err != nil {
		errs = append(errs, "Valid clientId is required")
	}
	caregiverID, err := primitive.ObjectIDFromHex(req.CaregiverID)
	if err != nil {
		errs = append(errs, "Valid caregiverId is required")
	}
	day, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		errs = append(errs, "Valid date (YYYY-MM-DD) is required")
	}
	minuteOfDay, err := services.ParseVisitTime(req.StartTime)
	if err != nil {
		errs = append(errs, err.Error())
	}
	if req.DurationHours <= 0 {
		errs = append(errs, "durationHours must be greater than zero")
	}
	if len(errs) > 0 {
		writeValidationError(w, errs)
		return
	}

	start := day.Add(time.Duration(minuteOfDay) * time.Minute)
	end := start.Add(time.Duration(req.DurationHours * float64(time.Hour)))

	now := time.Now()
	appointment := &models.Appointment{
		Client:        clientID,
		Caregiver:     caregiverID,
		Start:         start,
		End:           end,
		DurationHours: req.DurationHours,
		Status:        models.AppointmentScheduled,
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
		writeServerError(w, "AdminScheduleAppointment", err)
		return
	}
	appointment.ID, _ = res.InsertedID.(primitive.ObjectID)

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"data":    appointment,
		"message": "Appointment scheduled successfully",
	})
}

type unblockIPRequest struct {
	IP string `json:"ip"`
}

// AdminUnblockIP lifts a rate-limiter block from an IP address before its
// 24-hour window expires.
func AdminUnblockIP(w http.ResponseWriter, r *http.Request) {
	var req unblockIPRequest
	if !decodeBody(w, r, &req) {
		return
	}
	ip := strings.TrimSpace(req.IP)
	if ip == "" {
		writeError(w, http.StatusBadRequest, "IP address is required")
		return
	}

	blocked, err := middleware.IsIPBlocked(ip)
	if err != nil {
		writeServerError(w, "AdminUnblockIP", err)
		return
	}
	if !blocked {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"message": "IP address is not blocked",
		})
		return
	}

	if err := middleware.UnblockIP(ip); err != nil {
		writeServerError(w, "AdminUnblockIP", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "IP address unblocked successfully",
	})
}
