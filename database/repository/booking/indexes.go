package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the bookings collection.
func (r *mongoBookingRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		// One booking per member and session.
		{
			Keys:    bson.D{{Key: "gymMemberId", Value: 1}, {Key: "classSessionId", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_member_session"),
		},
		{
			Keys:    bson.D{{Key: "classSessionId", Value: 1}},
			Options: options.Index().SetName("session_idx"),
		},
		{
			Keys:    bson.D{{Key: "classId", Value: 1}},
			Options: options.Index().SetName("class_idx"),
		},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create booking indexes: %w", err)
	}
	return nil
}
