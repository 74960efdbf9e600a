package payment

import (
	"time"

	"pitchlink/internal/booking"
)

const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
	StatusRefunded  = "refunded"
)

type Payment struct {
	ID            int       `db:"id" json:"id"`
	BookingID     int       `db:"booking_id" json:"booking_id"`
	Amount        float64   `db:"amount" json:"amount" example:"20000"`
	Method        string    `db:"method" json:"method" example:"cash"`
	Status        string    `db:"status" json:"status" example:"completed"`
	TransactionID *string   `db:"transaction_id" json:"transaction_id,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// RecordPaymentRequest records money received outside the app. amount defaults to the booking total.
type RecordPaymentRequest struct {
	Amount        *float64 `json:"amount,omitempty" binding:"omitempty,gte=0" example:"20000"`
	Method        string   `json:"method" binding:"required,oneof=card bank_transfer flutterwave cash" example:"cash"`
	Status        string   `json:"status" binding:"required,oneof=pending completed failed refunded" example:"completed"`
	TransactionID *string  `json:"transaction_id,omitempty" binding:"omitempty,max=120"`
}

type Receipt struct {
	Payment *Payment         `json:"payment"`
	Booking *booking.Booking `json:"booking,omitempty"`
}
