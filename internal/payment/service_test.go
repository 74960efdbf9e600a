package payment

import (
	"context"
	"errors"
	"testing"

	"pitchlink/internal/apperr"
	"pitchlink/internal/auth"
	"pitchlink/internal/booking"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockBookings struct {
	booking.Service
	mock.Mock
}

func (m *MockBookings) GetOwnedBooking(ctx context.Context, id auth.Identity, key string) (*booking.BookingWithDetails, error) {
	args := m.Called(ctx, id, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.BookingWithDetails), args.Error(1)
}

func (m *MockBookings) SetPaymentStatus(ctx context.Context, bookingID int, status string) (*booking.Booking, error) {
	args := m.Called(ctx, bookingID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.Booking), args.Error(1)
}

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, p Payment) (*Payment, error) {
	args := m.Called(ctx, p)
	if fn, ok := args.Get(0).(func(context.Context, Payment) *Payment); ok {
		return fn(ctx, p), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Payment), args.Error(1)
}

func (m *MockRepository) ListByBooking(ctx context.Context, bookingID int) ([]Payment, error) {
	args := m.Called(ctx, bookingID)
	return args.Get(0).([]Payment), args.Error(1)
}

var owner = auth.Identity{UserID: 1, Email: "o@pitch.ng", Role: auth.RoleOwner}

func pendingBooking() *booking.BookingWithDetails {
	return &booking.BookingWithDetails{Booking: booking.Booking{
		ID: 5, OwnerID: 1, TotalAmount: 20000, Status: booking.StatusPending, PaymentStatus: booking.PaymentPending,
	}}
}

func echoPayment(m *MockRepository) {
	m.On("Create", mock.Anything, mock.AnythingOfType("payment.Payment")).Return(func(_ context.Context, p Payment) *Payment {
		p.ID = 1
		return &p
	}, nil)
}

func TestRecordPaymentStatusMapping(t *testing.T) {
	tests := []struct {
		paymentStatus string
		bookingStatus string
	}{
		{StatusCompleted, booking.PaymentConfirmed},
		{StatusRefunded, booking.PaymentRefunded},
		{StatusFailed, booking.PaymentFailed},
	}

	for _, tt := range tests {
		t.Run(tt.paymentStatus, func(t *testing.T) {
			repo := new(MockRepository)
			bookings := new(MockBookings)
			echoPayment(repo)
			bookings.On("GetOwnedBooking", mock.Anything, owner, "5").Return(pendingBooking(), nil)
			bookings.On("SetPaymentStatus", mock.Anything, 5, tt.bookingStatus).
				Return(&booking.Booking{ID: 5, PaymentStatus: tt.bookingStatus}, nil)

			receipt, err := NewService(repo, bookings).RecordPayment(context.Background(), owner, "5",
				RecordPaymentRequest{Method: "cash", Status: tt.paymentStatus})
			require.NoError(t, err)
			assert.Equal(t, tt.bookingStatus, receipt.Booking.PaymentStatus)
			assert.Equal(t, 20000.0, receipt.Payment.Amount)
			bookings.AssertExpectations(t)
		})
	}
}

func TestRecordPaymentPendingLeavesBooking(t *testing.T) {
	repo := new(MockRepository)
	bookings := new(MockBookings)
	echoPayment(repo)
	bookings.On("GetOwnedBooking", mock.Anything, owner, "5").Return(pendingBooking(), nil)

	amount := 5000.0
	receipt, err := NewService(repo, bookings).RecordPayment(context.Background(), owner, "5",
		RecordPaymentRequest{Amount: &amount, Method: "bank_transfer", Status: StatusPending})
	require.NoError(t, err)

	assert.Equal(t, 5000.0, receipt.Payment.Amount)
	require.NotNil(t, receipt.Payment.TransactionID)
	_, err = uuid.Parse(*receipt.Payment.TransactionID)
	assert.NoError(t, err, "transaction id defaults to a uuid")
	bookings.AssertNotCalled(t, "SetPaymentStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestRecordPaymentKeepsTransactionID(t *testing.T) {
	repo := new(MockRepository)
	bookings := new(MockBookings)
	echoPayment(repo)
	bookings.On("GetOwnedBooking", mock.Anything, owner, "5").Return(pendingBooking(), nil)

	tx := " FLW-123 "
	receipt, err := NewService(repo, bookings).RecordPayment(context.Background(), owner, "5",
		RecordPaymentRequest{Method: "flutterwave", Status: StatusPending, TransactionID: &tx})
	require.NoError(t, err)
	assert.Equal(t, "FLW-123", *receipt.Payment.TransactionID)
}

func TestRecordPaymentForeignBooking(t *testing.T) {
	repo := new(MockRepository)
	bookings := new(MockBookings)
	bookings.On("GetOwnedBooking", mock.Anything, owner, "9").Return(nil, apperr.Unauthorized("resource belongs to another owner"))

	_, err := NewService(repo, bookings).RecordPayment(context.Background(), owner, "9",
		RecordPaymentRequest{Method: "cash", Status: StatusCompleted})
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRecordPaymentBookingUpdateFails(t *testing.T) {
	repo := new(MockRepository)
	bookings := new(MockBookings)
	echoPayment(repo)
	bookings.On("GetOwnedBooking", mock.Anything, owner, "5").Return(pendingBooking(), nil)
	bookings.On("SetPaymentStatus", mock.Anything, 5, booking.PaymentConfirmed).Return(nil, errors.New("boom"))

	_, err := NewService(repo, bookings).RecordPayment(context.Background(), owner, "5",
		RecordPaymentRequest{Method: "cash", Status: StatusCompleted})
	assert.ErrorContains(t, err, "boom")
}

func TestListPayments(t *testing.T) {
	repo := new(MockRepository)
	bookings := new(MockBookings)
	bookings.On("GetOwnedBooking", mock.Anything, owner, "PL-abcde").Return(pendingBooking(), nil)
	repo.On("ListByBooking", mock.Anything, 5).Return([]Payment{{ID: 1, BookingID: 5}}, nil)

	got, err := NewService(repo, bookings).ListPayments(context.Background(), owner, "PL-abcde")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
