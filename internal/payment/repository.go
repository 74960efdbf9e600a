package payment

import (
	"context"

	"pitchlink/internal/db"

	"github.com/jmoiron/sqlx"
)

const paymentColumns = `id, booking_id, amount, method, status, transaction_id, created_at, updated_at`

type Repository interface {
	Create(ctx context.Context, p Payment) (*Payment, error)
	ListByBooking(ctx context.Context, bookingID int) ([]Payment, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, p Payment) (*Payment, error) {
	query := `
		INSERT INTO payments (booking_id, amount, method, status, transaction_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + paymentColumns

	var out Payment
	if err := r.db.GetContext(ctx, &out, query, p.BookingID, p.Amount, p.Method, p.Status, p.TransactionID); err != nil {
		return nil, db.Classify(err, "payment")
	}
	return &out, nil
}

func (r *repository) ListByBooking(ctx context.Context, bookingID int) ([]Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE booking_id = $1 ORDER BY created_at DESC, id DESC`

	payments := []Payment{}
	if err := r.db.SelectContext(ctx, &payments, query, bookingID); err != nil {
		return nil, db.Classify(err, "payment")
	}
	return payments, nil
}
