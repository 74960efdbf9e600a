package pricing

import (
	"errors"
	"math"
)

// Policy decides what an end time at or before the start time means.
type Policy int

const (
	// WrapOvernight treats end <= start as ending on the next day. Used by manual bookings.
	WrapOvernight Policy = iota
	// RejectOvernight refuses end <= start.
	RejectOvernight
)

func (p Policy) String() string {
	if p == RejectOvernight {
		return "reject_overnight"
	}
	return "wrap_overnight"
}

var (
	ErrEndBeforeStart = errors.New("end time must be after start time")
	ErrInvalidPrice   = errors.New("price per hour must be greater than zero")
)

// DurationMinutes is the booked length. Under WrapOvernight, equal start and end is a full day.
func DurationMinutes(start, end string, policy Policy) (int, error) {
	s, err := ParseClock(start)
	if err != nil {
		return 0, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return 0, err
	}

	if e > s {
		return e - s, nil
	}
	if policy == RejectOvernight {
		return 0, ErrEndBeforeStart
	}
	return (minutesPerDay - s) + e, nil
}

// ComputeTotal returns hours × pricePerHour rounded half-up to the whole currency unit.
func ComputeTotal(pricePerHour float64, start, end string, policy Policy) (float64, error) {
	if pricePerHour <= 0 {
		return 0, ErrInvalidPrice
	}

	minutes, err := DurationMinutes(start, end, policy)
	if err != nil {
		return 0, err
	}

	total := float64(minutes) / 60 * pricePerHour
	if total < 0 {
		total = 0
	}
	return RoundCurrency(total), nil
}

// RoundCurrency rounds half-up to the nearest whole unit (kobo are not charged).
func RoundCurrency(v float64) float64 {
	if v <= 0 {
		return 0
	}
	return math.Floor(v + 0.5)
}
