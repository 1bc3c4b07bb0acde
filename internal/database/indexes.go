package database

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes the application relies on. The unique
// email indexes are load-bearing: two concurrent provisioning requests for
// the same email race at these indexes and nowhere else.
func EnsureIndexes(ctx context.Context) error {
	uniqueEmail := mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}

	for _, collection := range []string{"users", "caregiver_credentials", "client_credentials", "caregivers"} {
		if _, err := DB.Collection(collection).Indexes().CreateOne(ctx, uniqueEmail); err != nil {
			return err
		}
	}

	// Availability lookups fetch all shifts for one weekday
	_, err := DB.Collection("shifts").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "dayIndex", Value: 1}},
	})
	if err != nil {
		return err
	}

	_, err = DB.Collection("appointments").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "caregiver", Value: 1}, {Key: "start", Value: 1}},
	})
	return err
}
