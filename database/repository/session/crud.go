package sessionRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gymflow/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateMany inserts the sessions in order, assigning identities to any
// session that does not have one yet, and returns the stored sessions.
func (r *mongoSessionRepo) CreateMany(ctx context.Context, sessions []models.ClassSession) ([]models.ClassSession, error) {
	if len(sessions) == 0 {
		return []models.ClassSession{}, nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	stored := make([]models.ClassSession, len(sessions))
	docs := make([]interface{}, len(sessions))
	for i, s := range sessions {
		if s.ID == "" {
			s.ID = uuid.New().String()
		}
		stored[i] = s
		docs[i] = s
	}

	if _, err := r.coll.InsertMany(ctx, docs, options.InsertMany().SetOrdered(true)); err != nil {
		return nil, fmt.Errorf("failed to insert class sessions: %w", err)
	}
	return stored, nil
}

func (r *mongoSessionRepo) GetByID(ctx context.Context, id string) (*models.ClassSession, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var session models.ClassSession
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&session); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to fetch class session %s: %w", id, err)
	}
	return &session, nil
}

func (r *mongoSessionRepo) Update(ctx context.Context, session *models.ClassSession) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"date":      session.Date,
			"startTime": session.StartTime,
			"endTime":   session.EndTime,
			"schedule":  session.Schedule,
		},
		"$inc": bson.M{"lockVersion": 1},
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": session.ID}, update)
	if err != nil {
		return fmt.Errorf("failed to update class session: %w", err)
	}
	if res.MatchedCount == 0 {
		return models.ErrSessionNotFound
	}
	return nil
}

func (r *mongoSessionRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete class session: %w", err)
	}
	if res.DeletedCount == 0 {
		return models.ErrSessionNotFound
	}
	return nil
}

func (r *mongoSessionRepo) DeleteMany(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteMany(ctx, bson.M{"id": bson.M{"$in": ids}})
	if err != nil {
		return 0, fmt.Errorf("failed to delete class sessions: %w", err)
	}
	return res.DeletedCount, nil
}

func (r *mongoSessionRepo) DeleteByClass(ctx context.Context, classID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteMany(ctx, bson.M{"classId": classID})
	if err != nil {
		return 0, fmt.Errorf("failed to delete sessions of class %s: %w", classID, err)
	}
	return res.DeletedCount, nil
}

// Lock bumps the session lock version inside the caller's transaction.
func (r *mongoSessionRepo) Lock(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$inc": bson.M{"lockVersion": 1}})
	if err != nil {
		return fmt.Errorf("failed to lock class session: %w", err)
	}
	if res.MatchedCount == 0 {
		return models.ErrSessionNotFound
	}
	return nil
}
