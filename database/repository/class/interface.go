package classRepo

import (
	"context"

	"gymflow/database"
	"gymflow/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type ClassRepository interface {
	Create(ctx context.Context, class *models.Class) error
	GetByID(ctx context.Context, id string) (*models.Class, error)
	List(ctx context.Context) ([]models.Class, error)
	Update(ctx context.Context, class *models.Class) error
	Delete(ctx context.Context, id string) error
	Lock(ctx context.Context, id string) error
	EnsureIndexes(ctx context.Context) error
}

type mongoClassRepo struct {
	coll *mongo.Collection
}

// NewMongoClassRepo constructs a MongoDB ClassRepository.
func NewMongoClassRepo(db *mongo.Database) ClassRepository {
	return &mongoClassRepo{
		coll: db.Collection(database.ClassesCollection),
	}
}
