package sessionRepo

import (
	"context"

	"gymflow/database"
	"gymflow/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type SessionRepository interface {
	CreateMany(ctx context.Context, sessions []models.ClassSession) ([]models.ClassSession, error)
	GetByID(ctx context.Context, id string) (*models.ClassSession, error)
	ListByClass(ctx context.Context, classID string) ([]models.ClassSession, error)
	ListByClasses(ctx context.Context, classIDs []string) ([]models.ClassSession, error)
	Update(ctx context.Context, session *models.ClassSession) error
	Delete(ctx context.Context, id string) error
	DeleteMany(ctx context.Context, ids []string) (int64, error)
	DeleteByClass(ctx context.Context, classID string) (int64, error)
	Lock(ctx context.Context, id string) error
	EnsureIndexes(ctx context.Context) error
}

type mongoSessionRepo struct {
	coll *mongo.Collection
}

// NewMongoSessionRepo constructs a MongoDB SessionRepository.
func NewMongoSessionRepo(db *mongo.Database) SessionRepository {
	return &mongoSessionRepo{
		coll: db.Collection(database.SessionsCollection),
	}
}
