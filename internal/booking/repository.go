package booking

import (
	"context"
	"fmt"
	"strings"

	"pitchlink/internal/apperr"
	"pitchlink/internal/db"
	"pitchlink/internal/pricing"

	"github.com/jmoiron/sqlx"
)

// booking_date is a DATE column; it is read back as text so it stays YYYY-MM-DD.
func bookingColumns(alias string) string {
	p := ""
	if alias != "" {
		p = alias + "."
	}
	cols := []string{
		p + "id", p + "pitch_id", p + "player_id", p + "owner_id",
		p + "player_name", p + "player_email", p + "player_phone",
		p + "booking_date::text AS booking_date", p + "start_time", p + "end_time",
		p + "total_amount", p + "status", p + "payment_status",
		p + "created_at", p + "updated_at",
	}
	return strings.Join(cols, ", ")
}

var detailsSelect = `SELECT ` + bookingColumns("b") + `,
		p.name AS pitch_name,
		p.location AS pitch_location,
		(SELECT pm.method FROM payments pm WHERE pm.booking_id = b.id
			ORDER BY pm.created_at DESC LIMIT 1) AS payment_method
	FROM bookings b
	JOIN pitches p ON p.id = b.pitch_id`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, nb NewBooking) (*Booking, error) {
	query := `
		INSERT INTO bookings (pitch_id, player_id, owner_id, player_name, player_email, player_phone,
			booking_date, start_time, end_time, total_amount, status, payment_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + bookingColumns("")

	var b Booking
	err := r.db.GetContext(ctx, &b, query,
		nb.PitchID,
		nb.PlayerID,
		nb.OwnerID,
		nb.Details.PlayerName,
		nb.Details.PlayerEmail,
		nb.Details.PlayerPhone,
		nb.Details.BookingDate,
		nb.Details.StartTime,
		nb.Details.EndTime,
		nb.TotalAmount,
		nb.Status,
		nb.PaymentStatus,
	)
	if err != nil {
		return nil, db.Classify(err, "booking")
	}

	return &b, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*BookingWithDetails, error) {
	var b BookingWithDetails
	if err := r.db.GetContext(ctx, &b, detailsSelect+` WHERE b.id = $1`, id); err != nil {
		return nil, db.Classify(err, "booking")
	}
	return &b, nil
}

func (r *repository) ListByOwner(ctx context.Context, ownerID int, filter, today string) ([]BookingWithDetails, error) {
	where := []string{"b.owner_id = $1"}
	args := []interface{}{ownerID}

	switch filter {
	case FilterToday:
		args = append(args, today)
		where = append(where, fmt.Sprintf("b.booking_date = $%d", len(args)))
	case FilterUpcoming:
		args = append(args, pricing.AddDays(today, 1))
		where = append(where, fmt.Sprintf("b.booking_date >= $%d", len(args)))
	case FilterPending:
		args = append(args, StatusPending)
		where = append(where, fmt.Sprintf("b.status = $%d", len(args)))
	case FilterAll, "":
	default:
		return nil, apperr.Validation("filter", "Unknown filter "+filter)
	}

	return r.list(ctx, where, args)
}

func (r *repository) ListFiltered(ctx context.Context, ownerID int, status, date string) ([]BookingWithDetails, error) {
	where := []string{"b.owner_id = $1"}
	args := []interface{}{ownerID}

	if status != "" {
		args = append(args, status)
		where = append(where, fmt.Sprintf("b.status = $%d", len(args)))
	}
	if date != "" {
		args = append(args, date)
		where = append(where, fmt.Sprintf("b.booking_date = $%d", len(args)))
	}

	return r.list(ctx, where, args)
}

func (r *repository) list(ctx context.Context, where []string, args []interface{}) ([]BookingWithDetails, error) {
	query := detailsSelect + ` WHERE ` + strings.Join(where, " AND ") + ` ORDER BY b.booking_date DESC, b.start_time ASC, b.id DESC`

	bookings := []BookingWithDetails{}
	if err := r.db.SelectContext(ctx, &bookings, query, args...); err != nil {
		return nil, db.Classify(err, "booking")
	}
	return bookings, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id int, status string) (*Booking, error) {
	return r.updateColumn(ctx, "status", id, status)
}

func (r *repository) UpdatePaymentStatus(ctx context.Context, id int, status string) (*Booking, error) {
	return r.updateColumn(ctx, "payment_status", id, status)
}

// column is always one of our own constants, never user input.
func (r *repository) updateColumn(ctx context.Context, column string, id int, value string) (*Booking, error) {
	query := fmt.Sprintf(`UPDATE bookings SET %s = $1, updated_at = NOW() WHERE id = $2 RETURNING %s`,
		column, bookingColumns(""))

	var b Booking
	if err := r.db.GetContext(ctx, &b, query, value, id); err != nil {
		return nil, db.Classify(err, "booking")
	}
	return &b, nil
}

func (r *repository) ListActiveForPitch(ctx context.Context, pitchID int, fromDate, toDate string) ([]Booking, error) {
	query := `SELECT ` + bookingColumns("") + ` FROM bookings
		WHERE pitch_id = $1 AND booking_date BETWEEN $2 AND $3 AND status <> 'cancelled'
		ORDER BY booking_date, start_time`

	bookings := []Booking{}
	if err := r.db.SelectContext(ctx, &bookings, query, pitchID, fromDate, toDate); err != nil {
		return nil, db.Classify(err, "booking")
	}
	return bookings, nil
}
