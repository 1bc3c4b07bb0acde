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

// CreateClient persists a client profile and provisions client-app login
// credentials for it. The profile write is durable even when provisioning
// fails afterwards.
func CreateClient(w http.ResponseWriter, r *http.Request) {
	var client models.Client
	if !decodeBody(w, r, &client) {
		return
	}

	var errs []string
	if client.PersonalInfo.FirstName == "" {
		errs = append(errs, "First name is required")
	}
	if client.PersonalInfo.LastName == "" {
		errs = append(errs, "Last name is required")
	}
	if len(errs) > 0 {
		writeValidationError(w, errs)
		return
	}

	now := time.Now()
	client.ID = primitive.NilObjectID
	if client.Status == "" {
		client.Status = models.ClientStatusActive
	}
	if user, ok := middleware.AuthUserFromContext(r.Context()); ok {
		client.CreatedBy = user.ID
	}
	client.CreatedAt = now
	client.UpdatedAt = now

	ctx, cancel := requestContext(r)
	defer cancel()

	res, err := database.DB.Collection("clients").InsertOne(ctx, &client)
	if err != nil {
		writeServerError(w, "CreateClient", err)
		return
	}
	client.ID, _ = res.InsertedID.(primitive.ObjectID)

	result, err := provisioningService.ProvisionClient(ctx, &client)
	if err != nil {
		// The profile stays; only the credential step failed
		switch {
		case errors.Is(err, services.ErrEmailRequired):
			writeError(w, http.StatusBadRequest, "Email is required for user account creation")
		case errors.Is(err, services.ErrEmailExists):
			writeError(w, http.StatusBadRequest, "Email already exists")
		default:
			writeServerError(w, "CreateClient", err)
		}
		return
	}

	message := "Client created successfully. Login credentials have been sent to their email."
	if !result.EmailSent {
		message = "Client created successfully, but the credentials email could not be sent."
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success":       true,
		"data":          client,
		"credentialsId": result.CredentialID,
		"message":       message,
	})
}

// GetClients lists clients with pagination, an optional status filter and a
// case-insensitive name/email search.
func GetClients(w http.ResponseWriter, r *http.Request) {
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
	if search := r.URL.Query().Get("search"); search != "" {
		regex := primitive.Regex{Pattern: search, Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"personalInfo.firstName": regex},
			bson.M{"personalInfo.lastName": regex},
			bson.M{"contactDetails.email": regex},
		}
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	collection := database.DB.Collection("clients")
	total, err := collection.CountDocuments(ctx, filter)
	if err != nil {
		writeServerError(w, "GetClients", err)
		return
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))
	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		writeServerError(w, "GetClients", err)
		return
	}

	clients := []models.Client{}
	if err := cursor.All(ctx, &clients); err != nil {
		writeServerError(w, "GetClients", err)
		return
	}

	totalPages := (total + int64(limit) - 1) / int64(limit)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":     true,
		"count":       len(clients),
		"total":       total,
		"totalPages":  totalPages,
		"currentPage": page,
		"data":        clients,
	})
}

// GetClient returns one client by id.
func GetClient(w http.ResponseWriter, r *http.Request) {
	id, ok := objectIDParam(w, r)
	if !ok {
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	var client models.Client
	err := database.DB.Collection("clients").FindOne(ctx, bson.M{"_id": id}).Decode(&client)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			writeError(w, http.StatusNotFound, "Client not found")
			return
		}
		writeServerError(w, "GetClient", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "data": client})
}

// UpdateClient applies a partial update. The creator reference and id are
// immutable.
func UpdateClient(w http.ResponseWriter, r *http.Request) {
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
	var client models.Client
	err := database.DB.Collection("clients").
		FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": update}, opts).
		Decode(&client)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			writeError(w, http.StatusNotFound, "Client not found")
			return
		}
		writeServerError(w, "UpdateClient", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "data": client})
}

// DeleteClient removes a client profile. Linked credentials are untouched;
// their tokens die at the resolver instead.
func DeleteClient(w http.ResponseWriter, r *http.Request) {
	id, ok := objectIDParam(w, r)
	if !ok {
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	res, err := database.DB.Collection("clients").DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		writeServerError(w, "DeleteClient", err)
		return
	}
	if res.DeletedCount == 0 {
		writeError(w, http.StatusNotFound, "Client not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Client deleted successfully",
	})
}

// GetClientStats returns the total client count plus a per-status breakdown.
func GetClientStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	collection := database.DB.Collection("clients")
	cursor, err := collection.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}}},
	})
	if err != nil {
		writeServerError(w, "GetClientStats", err)
		return
	}

	var rows []struct {
		Status string `bson:"_id"`
		Count  int64  `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		writeServerError(w, "GetClientStats", err)
		return
	}

	byStatus := map[string]int64{}
	var total int64
	for _, row := range rows {
		byStatus[row.Status] = row.Count
		total += row.Count
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data": map[string]interface{}{
			"total":    total,
			"byStatus": byStatus,
		},
	})
}
