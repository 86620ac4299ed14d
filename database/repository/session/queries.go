package sessionRepo

import (
	"context"
	"fmt"
	"time"

	"gymflow/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoSessionRepo) ListByClass(ctx context.Context, classID string) ([]models.ClassSession, error) {
	return r.find(ctx, bson.M{"classId": classID})
}

func (r *mongoSessionRepo) ListByClasses(ctx context.Context, classIDs []string) ([]models.ClassSession, error) {
	if len(classIDs) == 0 {
		return []models.ClassSession{}, nil
	}
	return r.find(ctx, bson.M{"classId": bson.M{"$in": classIDs}})
}

// find returns matching sessions ordered by schedule.
func (r *mongoSessionRepo) find(ctx context.Context, filter bson.M) ([]models.ClassSession, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "schedule", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query class sessions: %w", err)
	}
	defer cursor.Close(ctx)

	sessions := []models.ClassSession{}
	if err := cursor.All(ctx, &sessions); err != nil {
		return nil, fmt.Errorf("failed to decode class sessions: %w", err)
	}
	return sessions, nil
}
