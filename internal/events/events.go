package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Routing keys on the bookings topic exchange.
const (
	RKBookingCreated        = "booking.created"
	RKBookingStatusChanged  = "booking.status_changed"
	RKBookingPaymentChanged = "booking.payment_changed"

	// BindAllBookings matches every booking event.
	BindAllBookings = "booking.*"
)

// BookingEvent carries enough for consumers to find the affected (owner, date) rollup.
type BookingEvent struct {
	BookingID     int       `json:"booking_id"`
	Reference     string    `json:"reference"`
	OwnerID       int       `json:"owner_id"`
	PitchID       int       `json:"pitch_id"`
	BookingDate   string    `json:"booking_date"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	TotalAmount   float64   `json:"total_amount"`
	OccurredAt    time.Time `json:"occurred_at"`
}

type Publisher interface {
	Publish(ctx context.Context, key string, ev BookingEvent) error
}

// Noop drops every event. Used when no broker is configured.
type Noop struct{}

func (Noop) Publish(context.Context, string, BookingEvent) error { return nil }

func Decode(body []byte) (BookingEvent, error) {
	var ev BookingEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return ev, fmt.Errorf("decode booking event: %w", err)
	}
	if ev.OwnerID == 0 || ev.BookingDate == "" {
		return ev, fmt.Errorf("decode booking event: missing owner_id or booking_date")
	}
	return ev, nil
}
