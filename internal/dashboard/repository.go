package dashboard

import (
	"context"

	"pitchlink/internal/db"

	"github.com/jmoiron/sqlx"
)

type Repository interface {
	Totals(ctx context.Context, ownerID int, w Window) (*Totals, error)
	RecentActivity(ctx context.Context, ownerID, limit int) ([]Activity, error)
	Trends(ctx context.Context, ownerID int, from, to string) ([]TrendPoint, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// Earnings only count bookings whose payment_status is confirmed.
func (r *repository) Totals(ctx context.Context, ownerID int, w Window) (*Totals, error) {
	const q = `
		SELECT
			(SELECT COALESCE(SUM(total_amount), 0) FROM bookings
				WHERE owner_id = $1 AND payment_status = 'confirmed' AND booking_date = $2) AS today_earnings,
			(SELECT COALESCE(SUM(total_amount), 0) FROM bookings
				WHERE owner_id = $1 AND payment_status = 'confirmed' AND booking_date >= $3) AS weekly_earnings,
			(SELECT COALESCE(SUM(total_amount), 0) FROM bookings
				WHERE owner_id = $1 AND payment_status = 'confirmed' AND booking_date >= $4 AND booking_date < $5) AS monthly_earnings,
			(SELECT COUNT(*) FROM bookings
				WHERE owner_id = $1 AND status = 'pending') AS pending_bookings_count,
			(SELECT COUNT(*) FROM bookings
				WHERE owner_id = $1 AND booking_date > $2 AND status <> 'cancelled') AS upcoming_bookings_count
	`

	var t Totals
	if err := r.db.GetContext(ctx, &t, q, ownerID, w.Today, w.WeekStart, w.MonthStart, w.NextMonthStart); err != nil {
		return nil, db.Classify(err, "dashboard")
	}
	return &t, nil
}

func (r *repository) RecentActivity(ctx context.Context, ownerID, limit int) ([]Activity, error) {
	const q = `
		SELECT b.id, b.player_name, p.name AS pitch_name, p.location AS pitch_location,
			b.booking_date::text AS booking_date, b.start_time, b.end_time, b.total_amount,
			b.status, b.payment_status, b.created_at
		FROM bookings b
		JOIN pitches p ON p.id = b.pitch_id
		WHERE b.owner_id = $1
		ORDER BY b.created_at DESC
		LIMIT $2
	`

	activity := []Activity{}
	if err := r.db.SelectContext(ctx, &activity, q, ownerID, limit); err != nil {
		return nil, db.Classify(err, "dashboard")
	}
	return activity, nil
}

// Trends returns only days that have bookings. The service fills the gaps.
func (r *repository) Trends(ctx context.Context, ownerID int, from, to string) ([]TrendPoint, error) {
	const q = `
		SELECT booking_date::text AS date,
			COUNT(*) AS bookings,
			COALESCE(SUM(total_amount) FILTER (WHERE payment_status = 'confirmed'), 0) AS revenue
		FROM bookings
		WHERE owner_id = $1 AND booking_date BETWEEN $2 AND $3
		GROUP BY booking_date
		ORDER BY booking_date
	`

	points := []TrendPoint{}
	if err := r.db.SelectContext(ctx, &points, q, ownerID, from, to); err != nil {
		return nil, db.Classify(err, "dashboard")
	}
	return points, nil
}
