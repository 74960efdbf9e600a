package dashboard

import "time"

type Dashboard struct {
	TodayEarnings         float64      `json:"today_earnings" example:"20000"`
	WeeklyEarnings        float64      `json:"weekly_earnings" example:"85000"`
	MonthlyEarnings       float64      `json:"monthly_earnings" example:"310000"`
	PendingBookingsCount  int          `json:"pending_bookings_count" example:"3"`
	UpcomingBookingsCount int          `json:"upcoming_bookings_count" example:"7"`
	ActivePitchesCount    int          `json:"active_pitches_count" example:"2"`
	RecentActivity        []Activity   `json:"recent_activity"`
	BookingTrends         []TrendPoint `json:"booking_trends"`
}

// Totals are the scalar figures, read in one round trip.
type Totals struct {
	TodayEarnings         float64 `db:"today_earnings"`
	WeeklyEarnings        float64 `db:"weekly_earnings"`
	MonthlyEarnings       float64 `db:"monthly_earnings"`
	PendingBookingsCount  int     `db:"pending_bookings_count"`
	UpcomingBookingsCount int     `db:"upcoming_bookings_count"`
}

type Activity struct {
	ID            int       `db:"id" json:"id"`
	PlayerName    string    `db:"player_name" json:"player_name"`
	PitchName     string    `db:"pitch_name" json:"pitch_name"`
	PitchLocation string    `db:"pitch_location" json:"pitch_location"`
	BookingDate   string    `db:"booking_date" json:"booking_date"`
	StartTime     string    `db:"start_time" json:"start_time"`
	EndTime       string    `db:"end_time" json:"end_time"`
	TotalAmount   float64   `db:"total_amount" json:"total_amount"`
	Status        string    `db:"status" json:"status"`
	PaymentStatus string    `db:"payment_status" json:"payment_status"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

type TrendPoint struct {
	Date     string  `db:"date" json:"date" example:"2025-03-01"`
	Bookings int     `db:"bookings" json:"bookings" example:"4"`
	Revenue  float64 `db:"revenue" json:"revenue" example:"40000"`
}

// Window holds the dates the figures are computed against. All are YYYY-MM-DD.
type Window struct {
	Today          string
	WeekStart      string
	MonthStart     string
	NextMonthStart string
	TrendStart     string
}
