package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/careflowcentral/careflow-backend/internal/database"
	"github.com/careflowcentral/careflow-backend/internal/middleware"
	"github.com/careflowcentral/careflow-backend/internal/models"
	"github.com/careflowcentral/careflow-backend/pkg/utils"
)

const lockedMessage = "Account is temporarily locked due to too many failed login attempts. Please try again later."

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates a user in the main pool directly, without the provisioning
// workflow. Intended for bootstrapping admins and for development setups.
func Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeBody(w, r, &req) {
		return
	}

	var errs []string
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" {
		errs = append(errs, "Email is required")
	}
	if len(req.Password) < 6 {
		errs = append(errs, "Password must be at least 6 characters")
	}
	if len(errs) > 0 {
		writeValidationError(w, errs)
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		writeServerError(w, "Register", err)
		return
	}

	role := strings.ToLower(strings.TrimSpace(req.Role))
	if role == "" {
		role = models.RoleClient
	}

	now := time.Now()
	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         role,
		Status:       models.StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	res, err := database.DB.Collection("users").InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			writeError(w, http.StatusBadRequest, "Email already in use")
			return
		}
		writeServerError(w, "Register", err)
		return
	}
	user.ID, _ = res.InsertedID.(primitive.ObjectID)

	token, err := middleware.GenerateToken(user.ID, user.Email, user.Role, user.Username)
	if err != nil {
		writeServerError(w, "Register", err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "User registered successfully",
		"user": map[string]interface{}{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
			"role":     user.Role,
		},
		"token": token,
	})
}

// Login authenticates against the main users pool, falling back to the
// caregivers pool when the email is not found among users.
func Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Please provide email and password")
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	var user models.User
	err := database.DB.Collection("users").FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == nil {
		authenticate(w, ctx, "users", user.ID, user.Email, user.Role, user.Username, user.PasswordHash, &user.LoginLock, req.Password)
		return
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		writeServerError(w, "Login", err)
		return
	}

	var caregiver models.Caregiver
	err = database.DB.Collection("caregivers").FindOne(ctx, bson.M{"email": email}).Decode(&caregiver)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			writeError(w, http.StatusBadRequest, "Invalid credentials")
			return
		}
		writeServerError(w, "Login", err)
		return
	}
	authenticate(w, ctx, "caregivers", caregiver.ID, caregiver.Email, caregiver.Role, "", caregiver.PasswordHash, &caregiver.LoginLock, req.Password)
}

// authenticate runs the shared lockout-aware password check for one identity
// record and writes the response. Lock state changes are persisted before the
// failure response goes out.
func authenticate(w http.ResponseWriter, ctx context.Context, collection string, id primitive.ObjectID, email, role, username, passwordHash string, lock *models.LoginLock, password string) {
	now := time.Now()
	if lock.IsLocked(now) {
		writeError(w, http.StatusLocked, lockedMessage)
		return
	}

	if !utils.CheckPassword(password, passwordHash) {
		locked := lock.RegisterFailedLogin(now)
		if err := persistLoginLock(ctx, collection, id, lock); err != nil {
			writeServerError(w, "Login", err)
			return
		}
		if locked {
			writeError(w, http.StatusLocked, lockedMessage)
			return
		}
		writeError(w, http.StatusBadRequest, "Invalid credentials")
		return
	}

	lock.ResetLoginLock()
	update := bson.M{
		"$set":   bson.M{"loginAttempts": 0, "lastLogin": now},
		"$unset": bson.M{"lockUntil": ""},
	}
	if _, err := database.DB.Collection(collection).UpdateByID(ctx, id, update); err != nil {
		writeServerError(w, "Login", err)
		return
	}

	token, err := middleware.GenerateToken(id, email, role, username)
	if err != nil {
		writeServerError(w, "Login", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Login successful",
		"token":   token,
		"user": map[string]interface{}{
			"id":       id,
			"username": username,
			"email":    email,
			"role":     role,
		},
	})
}

func persistLoginLock(ctx context.Context, collection string, id primitive.ObjectID, lock *models.LoginLock) error {
	set := bson.M{"loginAttempts": lock.LoginAttempts}
	if lock.LockUntil != nil {
		set["lockUntil"] = *lock.LockUntil
	}
	_, err := database.DB.Collection(collection).UpdateByID(ctx, id, bson.M{"$set": set})
	return err
}

// GetAuthMe returns the authenticated identity as resolved by the token
// middleware.
func GetAuthMe(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.AuthUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authorized, no token")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data": map[string]interface{}{
			"id":    user.ID,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}
