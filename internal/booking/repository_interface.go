package booking

import "context"

type Repository interface {
	Create(ctx context.Context, nb NewBooking) (*Booking, error)
	GetByID(ctx context.Context, id int) (*BookingWithDetails, error)
	// ListByOwner applies one of the Filter* values. today is YYYY-MM-DD.
	ListByOwner(ctx context.Context, ownerID int, filter, today string) ([]BookingWithDetails, error)
	// ListFiltered narrows by status and date when they are non-empty.
	ListFiltered(ctx context.Context, ownerID int, status, date string) ([]BookingWithDetails, error)
	UpdateStatus(ctx context.Context, id int, status string) (*Booking, error)
	UpdatePaymentStatus(ctx context.Context, id int, status string) (*Booking, error)
	ListActiveForPitch(ctx context.Context, pitchID int, fromDate, toDate string) ([]Booking, error)
}
