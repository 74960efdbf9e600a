package pricing

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

const minutesPerDay = 24 * 60

var (
	ErrInvalidTime = errors.New("time must be in HH:MM format")
	ErrInvalidDate = errors.New("date must be in YYYY-MM-DD format")

	clockPattern = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9]$`)
	datePattern  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// ParseClock returns minutes since midnight for an HH:MM string. A single digit hour ("9:30") is accepted.
func ParseClock(s string) (int, error) {
	if !clockPattern.MatchString(s) {
		return 0, ErrInvalidTime
	}
	parts := strings.SplitN(s, ":", 2)
	h, _ := strconv.Atoi(parts[0])
	m, _ := strconv.Atoi(parts[1])
	return h*60 + m, nil
}

// FormatClock renders minutes since midnight as zero-padded HH:MM.
func FormatClock(minutes int) string {
	minutes = ((minutes % minutesPerDay) + minutesPerDay) % minutesPerDay
	h, m := minutes/60, minutes%60
	return pad2(h) + ":" + pad2(m)
}

// NormalizeClock rewrites "9:05" as "09:05" so stored values compare lexically.
func NormalizeClock(s string) (string, error) {
	m, err := ParseClock(s)
	if err != nil {
		return "", err
	}
	return FormatClock(m), nil
}

// ParseDate checks the YYYY-MM-DD shape and that the value is a real calendar date.
func ParseDate(s string) (time.Time, error) {
	if !datePattern.MatchString(s) {
		return time.Time{}, ErrInvalidDate
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// Today is the calendar date of now in loc.
func Today(now time.Time, loc *time.Location) string {
	return now.In(loc).Format(DateLayout)
}

// AddDays shifts a YYYY-MM-DD date. The input must already be valid.
func AddDays(date string, days int) string {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return date
	}
	return t.AddDate(0, 0, days).Format(DateLayout)
}

// MonthStart returns the first day of date's month.
func MonthStart(date string) string {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return date
	}
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).Format(DateLayout)
}

func pad2(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
