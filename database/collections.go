package database

// Collection names. Aggregations with $lookup refer to these directly.
const (
	MembersCollection  = "gym_members"
	ClassesCollection  = "classes"
	SessionsCollection = "class_sessions"
	BookingsCollection = "bookings"
)
