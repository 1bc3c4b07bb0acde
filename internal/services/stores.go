package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/careflowcentral/careflow-backend/internal/models"
)

// MongoCredentialStore persists identities across the three credential
// pools. The unique email index on each collection turns concurrent inserts
// for the same email into ErrEmailExists for the loser.
type MongoCredentialStore struct {
	db *mongo.Database
}

func NewMongoCredentialStore(db *mongo.Database) *MongoCredentialStore {
	return &MongoCredentialStore{db: db}
}

func (s *MongoCredentialStore) InsertUser(ctx context.Context, user *models.User) (primitive.ObjectID, error) {
	return s.insert(ctx, "users", user)
}

func (s *MongoCredentialStore) InsertCaregiverCredentials(ctx context.Context, creds *models.CaregiverCredentials) (primitive.ObjectID, error) {
	return s.insert(ctx, "caregiver_credentials", creds)
}

func (s *MongoCredentialStore) InsertClientCredentials(ctx context.Context, creds *models.ClientCredentials) (primitive.ObjectID, error) {
	return s.insert(ctx, "client_credentials", creds)
}

func (s *MongoCredentialStore) insert(ctx context.Context, collection string, doc interface{}) (primitive.ObjectID, error) {
	res, err := s.db.Collection(collection).InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, ErrEmailExists
		}
		return primitive.NilObjectID, err
	}
	id, _ := res.InsertedID.(primitive.ObjectID)
	return id, nil
}
