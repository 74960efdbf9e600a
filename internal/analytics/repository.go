package analytics

import (
	"context"

	"pitchlink/internal/db"

	"github.com/jmoiron/sqlx"
)

type Repository interface {
	// Recompute rebuilds one (owner, date) row from bookings. Safe to repeat.
	Recompute(ctx context.Context, ownerID int, date string) error
	Range(ctx context.Context, ownerID int, from, to string) ([]DailyRollup, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Recompute(ctx context.Context, ownerID int, date string) error {
	const q = `
		INSERT INTO analytics (owner_id, date, revenue, bookings_count)
		SELECT $1, $2::date,
			COALESCE(SUM(total_amount) FILTER (WHERE payment_status = 'confirmed'), 0),
			COUNT(*) FILTER (WHERE status <> 'cancelled')
		FROM bookings
		WHERE owner_id = $1 AND booking_date = $2::date
		ON CONFLICT (owner_id, date) DO UPDATE
		SET revenue = EXCLUDED.revenue,
			bookings_count = EXCLUDED.bookings_count,
			updated_at = NOW()
	`

	if _, err := r.db.ExecContext(ctx, q, ownerID, date); err != nil {
		return db.Classify(err, "analytics")
	}
	return nil
}

func (r *repository) Range(ctx context.Context, ownerID int, from, to string) ([]DailyRollup, error) {
	const q = `
		SELECT date::text AS date, revenue, bookings_count, updated_at
		FROM analytics
		WHERE owner_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY date
	`

	days := []DailyRollup{}
	if err := r.db.SelectContext(ctx, &days, q, ownerID, from, to); err != nil {
		return nil, db.Classify(err, "analytics")
	}
	return days, nil
}
