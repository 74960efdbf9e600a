package analytics

import "time"

type DailyRollup struct {
	Date          string    `db:"date" json:"date" example:"2025-03-01"`
	Revenue       float64   `db:"revenue" json:"revenue" example:"40000"`
	BookingsCount int       `db:"bookings_count" json:"bookings_count" example:"3"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

type Report struct {
	From          string        `json:"from"`
	To            string        `json:"to"`
	TotalRevenue  float64       `json:"total_revenue"`
	TotalBookings int           `json:"total_bookings"`
	Days          []DailyRollup `json:"days"`
}

// RangeQuery is the optional date window of GET /v1/analytics.
type RangeQuery struct {
	From string `form:"from" json:"from" binding:"omitempty,isodate"`
	To   string `form:"to" json:"to" binding:"omitempty,isodate"`
}
