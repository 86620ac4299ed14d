package bookingRepo

import (
	"context"
	"time"

	"gymflow/database"
	"gymflow/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type BookingRepository interface {
	// Create fails with models.ErrDuplicateBooking when the member already
	// holds a booking for the session.
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	Delete(ctx context.Context, id string) error
	DeleteByMember(ctx context.Context, memberID string) (int64, error)
	Exists(ctx context.Context, memberID, sessionID string) (bool, error)

	CountBySession(ctx context.Context, sessionID string) (int, error)
	CountBySessions(ctx context.Context, sessionIDs []string) (map[string]int, error)
	CountByClass(ctx context.Context, classID string) (int, error)
	MaxPerSession(ctx context.Context, classID string) (int, error)
	CountScheduledForMember(ctx context.Context, memberID string, from, to time.Time) (int, error)

	GetDetailByID(ctx context.Context, id string) (*models.BookingDetail, error)
	ListDetailsByMember(ctx context.Context, memberID string) ([]models.BookingDetail, error)
	ListDetailsByClass(ctx context.Context, classID string) ([]models.BookingDetail, error)
	// MemberIDsByClass returns the distinct members holding a booking in the class.
	MemberIDsByClass(ctx context.Context, classID string) ([]string, error)

	EnsureIndexes(ctx context.Context) error
}

type mongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo constructs a MongoDB BookingRepository.
func NewMongoBookingRepo(db *mongo.Database) BookingRepository {
	return &mongoBookingRepo{
		coll: db.Collection(database.BookingsCollection),
	}
}
