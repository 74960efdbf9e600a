package booking

import (
	"strings"

	"pitchlink/internal/apperr"
	"pitchlink/internal/pricing"

	"github.com/go-playground/validator/v10"
)

var fieldValidator = validator.New()

// Validate checks d in a fixed order and reports the first problem.
// today is YYYY-MM-DD in the venue's timezone.
func Validate(d Details, today string, policy pricing.Policy) error {
	if strings.TrimSpace(d.PlayerName) == "" {
		return apperr.Validation("player_name", "Player name is required")
	}

	email := trimmed(d.PlayerEmail)
	if email == "" && trimmed(d.PlayerPhone) == "" {
		return apperr.Validation("contact", "Either phone or email is required")
	}
	if email != "" {
		if err := fieldValidator.Var(email, "email"); err != nil {
			return apperr.Validation("player_email", "Invalid email address")
		}
	}

	if _, err := pricing.ParseDate(d.BookingDate); err != nil {
		return apperr.Validation("booking_date", "Date must be a valid YYYY-MM-DD date")
	}
	// same-length ISO dates compare lexically
	if d.BookingDate < today {
		return apperr.Validation("booking_date", "Date cannot be in the past")
	}

	start, err := pricing.ParseClock(d.StartTime)
	if err != nil {
		return apperr.Validation("start_time", "Start time must be in HH:MM format")
	}
	end, err := pricing.ParseClock(d.EndTime)
	if err != nil {
		return apperr.Validation("end_time", "End time must be in HH:MM format")
	}

	if policy == pricing.RejectOvernight && end <= start {
		return apperr.Validation("end_time", "End time must be after start time")
	}

	return nil
}

// normalize trims text fields, drops blank contacts and zero-pads clock values.
// Call after Validate.
func normalize(d Details) Details {
	d.PlayerName = strings.TrimSpace(d.PlayerName)
	d.PlayerEmail = blankToNil(d.PlayerEmail)
	d.PlayerPhone = blankToNil(d.PlayerPhone)
	if s, err := pricing.NormalizeClock(d.StartTime); err == nil {
		d.StartTime = s
	}
	if e, err := pricing.NormalizeClock(d.EndTime); err == nil {
		d.EndTime = e
	}
	return d
}

func trimmed(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

func blankToNil(s *string) *string {
	v := trimmed(s)
	if v == "" {
		return nil
	}
	return &v
}
