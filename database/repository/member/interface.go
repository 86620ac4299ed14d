package memberRepo

import (
	"context"

	"gymflow/database"
	"gymflow/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type MemberRepository interface {
	Create(ctx context.Context, member *models.GymMember) error
	GetByID(ctx context.Context, id string) (*models.GymMember, error)
	List(ctx context.Context) ([]models.GymMember, error)
	Update(ctx context.Context, member *models.GymMember) error
	Delete(ctx context.Context, id string) error
	Lock(ctx context.Context, id string) error
	EnsureIndexes(ctx context.Context) error
}

type mongoMemberRepo struct {
	coll *mongo.Collection
}

// NewMongoMemberRepo constructs a MongoDB MemberRepository.
func NewMongoMemberRepo(db *mongo.Database) MemberRepository {
	return &mongoMemberRepo{
		coll: db.Collection(database.MembersCollection),
	}
}
