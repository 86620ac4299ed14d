package models

// MemberReport summarises a member's activity in the current month.
type MemberReport struct {
	MemberID               string   `json:"memberId"`
	MemberName             string   `json:"memberName"`
	PlanType               string   `json:"planType"`
	TotalBookingsThisMonth int      `json:"totalBookingsThisMonth"`
	FavoriteClassTypes     []string `json:"favoriteClassTypes"`
}
