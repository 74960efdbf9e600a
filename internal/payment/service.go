package payment

import (
	"context"
	"fmt"
	"strings"

	"pitchlink/internal/auth"
	"pitchlink/internal/booking"
	"pitchlink/internal/logger"
	"pitchlink/internal/metrics"

	"github.com/google/uuid"
)

type Service interface {
	RecordPayment(ctx context.Context, id auth.Identity, bookingKey string, req RecordPaymentRequest) (*Receipt, error)
	ListPayments(ctx context.Context, id auth.Identity, bookingKey string) ([]Payment, error)
}

// bookingPaymentStatus is what a payment outcome does to its booking. Pending leaves it alone.
var bookingPaymentStatus = map[string]string{
	StatusCompleted: booking.PaymentConfirmed,
	StatusRefunded:  booking.PaymentRefunded,
	StatusFailed:    booking.PaymentFailed,
}

type service struct {
	repo     Repository
	bookings booking.Service
}

func NewService(repo Repository, bookings booking.Service) Service {
	return &service{repo: repo, bookings: bookings}
}

func (s *service) RecordPayment(ctx context.Context, id auth.Identity, bookingKey string, req RecordPaymentRequest) (*Receipt, error) {
	b, err := s.bookings.GetOwnedBooking(ctx, id, bookingKey)
	if err != nil {
		return nil, err
	}

	amount := b.TotalAmount
	if req.Amount != nil {
		amount = *req.Amount
	}

	txID := uuid.NewString()
	if req.TransactionID != nil && strings.TrimSpace(*req.TransactionID) != "" {
		txID = strings.TrimSpace(*req.TransactionID)
	}

	p, err := s.repo.Create(ctx, Payment{
		BookingID:     b.ID,
		Amount:        amount,
		Method:        req.Method,
		Status:        req.Status,
		TransactionID: &txID,
	})
	if err != nil {
		metrics.RecordPayment(req.Method, "error")
		return nil, err
	}
	metrics.RecordPayment(p.Method, p.Status)
	logger.Info("payment recorded", "booking_id", b.ID, "payment_id", p.ID, "method", p.Method, "status", p.Status)

	receipt := &Receipt{Payment: p, Booking: &b.Booking}

	next, ok := bookingPaymentStatus[p.Status]
	if !ok || next == b.PaymentStatus {
		return receipt, nil
	}

	updated, err := s.bookings.SetPaymentStatus(ctx, b.ID, next)
	if err != nil {
		logger.Error("payment recorded but booking not updated", "booking_id", b.ID, "payment_id", p.ID, "error", err)
		return nil, fmt.Errorf("update booking %d payment status: %w", b.ID, err)
	}
	receipt.Booking = updated
	return receipt, nil
}

func (s *service) ListPayments(ctx context.Context, id auth.Identity, bookingKey string) ([]Payment, error) {
	b, err := s.bookings.GetOwnedBooking(ctx, id, bookingKey)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByBooking(ctx, b.ID)
}
