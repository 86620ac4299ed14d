package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"gymflow/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func (r *mongoBookingRepo) CountBySession(ctx context.Context, sessionID string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"classSessionId": sessionID})
	if err != nil {
		return 0, fmt.Errorf("failed to count session bookings: %w", err)
	}
	return int(n), nil
}

func (r *mongoBookingRepo) CountByClass(ctx context.Context, classID string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"classId": classID})
	if err != nil {
		return 0, fmt.Errorf("failed to count class bookings: %w", err)
	}
	return int(n), nil
}

// CountBySessions returns the booking count per session. Sessions without
// bookings are absent from the map.
func (r *mongoBookingRepo) CountBySessions(ctx context.Context, sessionIDs []string) (map[string]int, error) {
	counts := make(map[string]int, len(sessionIDs))
	if len(sessionIDs) == 0 {
		return counts, nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"classSessionId": bson.M{"$in": sessionIDs}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$classSessionId"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate session bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		SessionID string `bson:"_id"`
		Count     int    `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode session booking counts: %w", err)
	}
	for _, row := range rows {
		counts[row.SessionID] = row.Count
	}
	return counts, nil
}

// MaxPerSession returns the highest booking count held by any single
// session of the class, or 0 when the class has no bookings.
func (r *mongoBookingRepo) MaxPerSession(ctx context.Context, classID string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"classId": classID}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$classSessionId"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "max", Value: bson.D{{Key: "$max", Value: "$count"}}},
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("failed to aggregate class bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Max int `bson:"max"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return 0, fmt.Errorf("failed to decode class booking max: %w", err)
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Max, nil
}

// CountScheduledForMember counts the member's bookings whose session is
// scheduled in [from, to). Bookings whose session no longer exists are not
// counted.
func (r *mongoBookingRepo) CountScheduledForMember(ctx context.Context, memberID string, from, to time.Time) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"gymMemberId": memberID}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: database.SessionsCollection},
			{Key: "localField", Value: "classSessionId"},
			{Key: "foreignField", Value: "id"},
			{Key: "as", Value: "session"},
		}}},
		{{Key: "$unwind", Value: "$session"}},
		{{Key: "$match", Value: bson.M{"session.schedule": bson.M{"$gte": from, "$lt": to}}}},
		{{Key: "$count", Value: "total"}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("failed to count monthly bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Total int `bson:"total"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return 0, fmt.Errorf("failed to decode monthly booking count: %w", err)
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Total, nil
}
