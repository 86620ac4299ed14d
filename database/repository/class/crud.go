package classRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gymflow/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoClassRepo) Create(ctx context.Context, class *models.Class) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, class); err != nil {
		return fmt.Errorf("failed to insert class: %w", err)
	}
	return nil
}

func (r *mongoClassRepo) GetByID(ctx context.Context, id string) (*models.Class, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var class models.Class
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&class); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrClassNotFound
		}
		return nil, fmt.Errorf("failed to fetch class %s: %w", id, err)
	}
	return &class, nil
}

func (r *mongoClassRepo) List(ctx context.Context) ([]models.Class, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "classType", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list classes: %w", err)
	}
	defer cursor.Close(ctx)

	classes := []models.Class{}
	if err := cursor.All(ctx, &classes); err != nil {
		return nil, fmt.Errorf("failed to decode classes: %w", err)
	}
	return classes, nil
}

func (r *mongoClassRepo) Update(ctx context.Context, class *models.Class) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"classType":   class.ClassType,
			"maxCapacity": class.MaxCapacity,
			"updatedAt":   class.UpdatedAt,
		},
		"$inc": bson.M{"lockVersion": 1},
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": class.ID}, update)
	if err != nil {
		return fmt.Errorf("failed to update class: %w", err)
	}
	if res.MatchedCount == 0 {
		return models.ErrClassNotFound
	}
	return nil
}

func (r *mongoClassRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete class: %w", err)
	}
	if res.DeletedCount == 0 {
		return models.ErrClassNotFound
	}
	return nil
}

// Lock bumps the class lock version inside the caller's transaction.
func (r *mongoClassRepo) Lock(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$inc": bson.M{"lockVersion": 1}})
	if err != nil {
		return fmt.Errorf("failed to lock class: %w", err)
	}
	if res.MatchedCount == 0 {
		return models.ErrClassNotFound
	}
	return nil
}
