package memberRepo

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

func (r *mongoMemberRepo) Create(ctx context.Context, member *models.GymMember) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, member); err != nil {
		return fmt.Errorf("failed to insert gym member: %w", err)
	}
	return nil
}

func (r *mongoMemberRepo) GetByID(ctx context.Context, id string) (*models.GymMember, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var member models.GymMember
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&member); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to fetch gym member %s: %w", id, err)
	}
	return &member, nil
}

func (r *mongoMemberRepo) List(ctx context.Context) ([]models.GymMember, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list gym members: %w", err)
	}
	defer cursor.Close(ctx)

	members := []models.GymMember{}
	if err := cursor.All(ctx, &members); err != nil {
		return nil, fmt.Errorf("failed to decode gym members: %w", err)
	}
	return members, nil
}

func (r *mongoMemberRepo) Update(ctx context.Context, member *models.GymMember) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"name":      member.Name,
			"planType":  member.PlanType,
			"updatedAt": member.UpdatedAt,
		},
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": member.ID}, update)
	if err != nil {
		return fmt.Errorf("failed to update gym member: %w", err)
	}
	if res.MatchedCount == 0 {
		return models.ErrMemberNotFound
	}
	return nil
}

func (r *mongoMemberRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete gym member: %w", err)
	}
	if res.DeletedCount == 0 {
		return models.ErrMemberNotFound
	}
	return nil
}

// Lock bumps the member's lock version so that concurrent transactions
// touching the same member conflict and retry.
func (r *mongoMemberRepo) Lock(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$inc": bson.M{"lockVersion": 1}})
	if err != nil {
		return fmt.Errorf("failed to lock gym member: %w", err)
	}
	if res.MatchedCount == 0 {
		return models.ErrMemberNotFound
	}
	return nil
}
