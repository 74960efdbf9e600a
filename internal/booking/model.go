package booking

import (
	"time"
)

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

const (
	PaymentPending   = "pending"
	PaymentConfirmed = "confirmed"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
	PaymentRefunded  = "refunded"
)

// List filters for GetBookings.
const (
	FilterAll      = "all"
	FilterToday    = "today"
	FilterUpcoming = "upcoming"
	FilterPending  = "pending"
)

var statuses = map[string]bool{
	StatusPending: true, StatusConfirmed: true, StatusCancelled: true, StatusCompleted: true,
}

var paymentStatuses = map[string]bool{
	PaymentPending: true, PaymentConfirmed: true, PaymentCompleted: true, PaymentFailed: true, PaymentRefunded: true,
}

func ValidStatus(s string) bool        { return statuses[s] }
func ValidPaymentStatus(s string) bool { return paymentStatuses[s] }

// StoredPaymentStatus folds "completed" into "confirmed", the value earnings are summed over.
func StoredPaymentStatus(s string) string {
	if s == PaymentCompleted {
		return PaymentConfirmed
	}
	return s
}

type Booking struct {
	ID            int       `db:"id" json:"id"`
	Reference     string    `db:"-" json:"reference" example:"PL-K3x9Q"`
	PitchID       int       `db:"pitch_id" json:"pitch_id"`
	PlayerID      *int      `db:"player_id" json:"player_id,omitempty"`
	OwnerID       int       `db:"owner_id" json:"owner_id"`
	PlayerName    string    `db:"player_name" json:"player_name"`
	PlayerEmail   *string   `db:"player_email" json:"player_email,omitempty"`
	PlayerPhone   *string   `db:"player_phone" json:"player_phone,omitempty"`
	BookingDate   string    `db:"booking_date" json:"booking_date" example:"2025-03-01"`
	StartTime     string    `db:"start_time" json:"start_time" example:"09:00"`
	EndTime       string    `db:"end_time" json:"end_time" example:"11:00"`
	TotalAmount   float64   `db:"total_amount" json:"total_amount" example:"20000"`
	Status        string    `db:"status" json:"status" example:"pending"`
	PaymentStatus string    `db:"payment_status" json:"payment_status" example:"pending"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

type BookingWithDetails struct {
	Booking
	PitchName     string  `db:"pitch_name" json:"pitch_name"`
	PitchLocation string  `db:"pitch_location" json:"pitch_location"`
	PaymentMethod *string `db:"payment_method" json:"payment_method,omitempty"`
}

// Details are the player and slot fields shared by both booking flows.
type Details struct {
	PlayerName  string  `json:"player_name" example:"Tunde Bakare"`
	PlayerEmail *string `json:"player_email,omitempty" example:"tunde@example.com"`
	PlayerPhone *string `json:"player_phone,omitempty" example:"+2348012345678"`
	BookingDate string  `json:"booking_date" example:"2025-03-01"`
	StartTime   string  `json:"start_time" example:"09:00"`
	EndTime     string  `json:"end_time" example:"11:00"`
}

// CreateBookingRequest is the owner's manual booking. total_amount is accepted
// for compatibility and always recomputed.
type CreateBookingRequest struct {
	PitchID int `json:"pitch_id" binding:"required,gt=0" example:"10"`
	Details
	TotalAmount   *float64 `json:"total_amount,omitempty" example:"20000"`
	PaymentStatus string   `json:"payment_status,omitempty" binding:"omitempty,oneof=pending confirmed completed failed refunded" example:"pending"`
}

// RequestBookingRequest is a player asking for a slot on a pitch.
type RequestBookingRequest struct {
	Details
}

// SearchQuery narrows a listing by booking status and day.
type SearchQuery struct {
	Status string `form:"status" json:"status"`
	Date   string `form:"date" json:"date" binding:"omitempty,isodate"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required" example:"confirmed"`
}

// NewBooking is what the repository inserts.
type NewBooking struct {
	PitchID       int
	PlayerID      *int
	OwnerID       int
	Details       Details
	TotalAmount   float64
	Status        string
	PaymentStatus string
}
