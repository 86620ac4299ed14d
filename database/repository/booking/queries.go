package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"gymflow/database"
	"gymflow/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// lookupOne joins a single related document by its "id" field. The related
// field is left unset when the document is missing.
func lookupOne(from, localField, as string) []bson.D {
	return []bson.D{
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: from},
			{Key: "localField", Value: localField},
			{Key: "foreignField", Value: "id"},
			{Key: "as", Value: as},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$" + as},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
	}
}

func detailPipeline(match bson.M) mongo.Pipeline {
	pipeline := mongo.Pipeline{{{Key: "$match", Value: match}}}
	pipeline = append(pipeline, lookupOne(database.MembersCollection, "gymMemberId", "member")...)
	pipeline = append(pipeline, lookupOne(database.SessionsCollection, "classSessionId", "session")...)
	pipeline = append(pipeline, lookupOne(database.ClassesCollection, "classId", "class")...)
	pipeline = append(pipeline, bson.D{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}}}})
	return pipeline
}

func (r *mongoBookingRepo) listDetails(ctx context.Context, match bson.M) ([]models.BookingDetail, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Aggregate(ctx, detailPipeline(match))
	if err != nil {
		return nil, fmt.Errorf("failed to query booking details: %w", err)
	}
	defer cursor.Close(ctx)

	details := []models.BookingDetail{}
	if err := cursor.All(ctx, &details); err != nil {
		return nil, fmt.Errorf("failed to decode booking details: %w", err)
	}
	return details, nil
}

func (r *mongoBookingRepo) GetDetailByID(ctx context.Context, id string) (*models.BookingDetail, error) {
	details, err := r.listDetails(ctx, bson.M{"id": id})
	if err != nil {
		return nil, err
	}
	if len(details) == 0 {
		return nil, models.ErrBookingNotFound
	}
	return &details[0], nil
}

func (r *mongoBookingRepo) ListDetailsByMember(ctx context.Context, memberID string) ([]models.BookingDetail, error) {
	return r.listDetails(ctx, bson.M{"gymMemberId": memberID})
}

func (r *mongoBookingRepo) ListDetailsByClass(ctx context.Context, classID string) ([]models.BookingDetail, error) {
	return r.listDetails(ctx, bson.M{"classId": classID})
}

func (r *mongoBookingRepo) MemberIDsByClass(ctx context.Context, classID string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	values, err := r.coll.Distinct(ctx, "gymMemberId", bson.M{"classId": classID})
	if err != nil {
		return nil, fmt.Errorf("failed to list booked members: %w", err)
	}
	ids := make([]string, 0, len(values))
	for _, v := range values {
		if id, ok := v.(string); ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}
