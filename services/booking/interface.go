package booking

import (
	"context"

	"gymflow/models"
)

// Service is the booking surface used by the HTTP handlers.
type Service interface {
	BookClass(ctx context.Context, memberID, sessionID string) (*Result, error)
	CancelBooking(ctx context.Context, bookingID string) (*Result, error)
	GetBooking(ctx context.Context, bookingID string) (*models.BookingDTO, error)
	ListByMember(ctx context.Context, memberID string) ([]models.BookingDTO, error)
	ListByClass(ctx context.Context, classID string) ([]models.BookingDTO, error)
}

var _ Service = (*Ledger)(nil)
