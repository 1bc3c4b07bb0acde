package services

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/careflowcentral/careflow-backend/internal/middleware"
	"github.com/careflowcentral/careflow-backend/internal/models"
)

// MongoIdentityResolver maps verified token claims to the current identity
// record. A token whose identity has been deleted resolves to
// ErrIdentityNotFound, which revokes it.
type MongoIdentityResolver struct {
	db *mongo.Database
}

func NewMongoIdentityResolver(db *mongo.Database) *MongoIdentityResolver {
	return &MongoIdentityResolver{db: db}
}

type identityDoc struct {
	ID    primitive.ObjectID `bson:"_id"`
	Email string             `bson:"email"`
	Role  string             `bson:"role"`
}

func (r *MongoIdentityResolver) Resolve(ctx context.Context, claims *middleware.Claims) (*middleware.AuthUser, error) {
	id, err := primitive.ObjectIDFromHex(claims.Subject)
	if err != nil {
		return nil, middleware.ErrIdentityNotFound
	}

	// The main pool first, then the role's separate pool. Pools are
	// disjoint so at most one lookup matches.
	collections := []string{"users"}
	switch claims.Role {
	case models.RoleCaregiver:
		collections = append(collections, "caregivers", "caregiver_credentials")
	case models.RoleClient:
		collections = append(collections, "client_credentials")
	}

	lookupCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// Hash excluded at the query level, never just at serialization
	projection := options.FindOne().SetProjection(bson.M{"passwordHash": 0})
	for _, collection := range collections {
		var doc identityDoc
		err := r.db.Collection(collection).FindOne(lookupCtx, bson.M{"_id": id}, projection).Decode(&doc)
		if err == nil {
			return &middleware.AuthUser{ID: doc.ID, Email: doc.Email, Role: doc.Role}, nil
		}
		if !errors.Is(err, mongo.ErrNoDocuments) {
			return nil, err
		}
	}

	return nil, middleware.ErrIdentityNotFound
}
