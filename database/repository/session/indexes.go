package sessionRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the class_sessions collection.
func (r *mongoSessionRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		// Primary query pattern: a class's sessions in schedule order.
		{
			Keys:    bson.D{{Key: "classId", Value: 1}, {Key: "schedule", Value: 1}},
			Options: options.Index().SetName("class_schedule_idx"),
		},
		// Month window lookups from the booking aggregations.
		{
			Keys:    bson.D{{Key: "schedule", Value: 1}},
			Options: options.Index().SetName("schedule_idx"),
		},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create class session indexes: %w", err)
	}
	return nil
}
