package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/careflowcentral/careflow-backend/internal/database"
	"github.com/careflowcentral/careflow-backend/internal/models"
)

// GetUsers lists the main user pool without password hashes. Admin only.
func GetUsers(w http.ResponseWriter, r *http.Request) {
	filter := bson.M{}
	if role := r.URL.Query().Get("role"); role != "" {
		filter["role"] = strings.ToLower(role)
	}
	if status := r.URL.Query().Get("status"); status != "" {
		filter["status"] = status
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	opts := options.Find().
		SetProjection(bson.M{"passwordHash": 0}).
		SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := database.DB.Collection("users").Find(ctx, filter, opts)
	if err != nil {
		writeServerError(w, "GetUsers", err)
		return
	}

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		writeServerError(w, "GetUsers", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"count":   len(users),
		"data":    users,
	})
}

// GetUser returns one user by id.
func GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := objectIDParam(w, r)
	if !ok {
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	opts := options.FindOne().SetProjection(bson.M{"passwordHash": 0})
	var user models.User
	err := database.DB.Collection("users").FindOne(ctx, bson.M{"_id": id}, opts).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		writeServerError(w, "GetUser", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "data": user})
}

// GetUserByEmail returns one user by email, matched case-insensitively via
// the stored lowercase form.
func GetUserByEmail(w http.ResponseWriter, r *http.Request) {
	email := strings.ToLower(strings.TrimSpace(chi.URLParam(r, "email")))
	if email == "" {
		writeError(w, http.StatusBadRequest, "Email is required")
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	opts := options.FindOne().SetProjection(bson.M{"passwordHash": 0})
	var user models.User
	err := database.DB.Collection("users").FindOne(ctx, bson.M{"email": email}, opts).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		writeServerError(w, "GetUserByEmail", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "data": user})
}

// UpdateUser applies a partial update. Passwords never move through this
// endpoint, and the unique email constraint still applies.
func UpdateUser(w http.ResponseWriter, r *http.Request) {
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
	delete(update, "password")
	delete(update, "passwordHash")
	delete(update, "createdAt")
	if email, present := update["email"]; present {
		s, _ := email.(string)
		update["email"] = strings.ToLower(strings.TrimSpace(s))
	}
	update["updatedAt"] = time.Now()

	ctx, cancel := requestContext(r)
	defer cancel()

	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(bson.M{"passwordHash": 0})
	var user models.User
	err := database.DB.Collection("users").
		FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": update}, opts).
		Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		if mongo.IsDuplicateKeyError(err) {
			writeError(w, http.StatusBadRequest, "Email already in use")
			return
		}
		writeServerError(w, "UpdateUser", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "data": user})
}

// DeleteUser removes a user. Deletion revokes any outstanding tokens for the
// identity at the resolver.
func DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := objectIDParam(w, r)
	if !ok {
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	res, err := database.DB.Collection("users").DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		writeServerError(w, "DeleteUser", err)
		return
	}
	if res.DeletedCount == 0 {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "User deleted successfully",
	})
}
