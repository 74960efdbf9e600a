package booking

import (
	"pitchlink/internal/pricing"
)

// window is a booked interval in minutes relative to midnight of some base date.
type window struct {
	start, end int
}

func (w window) overlaps(o window) bool {
	return w.start < o.end && o.start < w.end
}

// windowFor places a booking on a timeline anchored at midnight of base.
// Overnight bookings extend past 24h.
func windowFor(date, start, end, base string) (window, bool) {
	s, err := pricing.ParseClock(start)
	if err != nil {
		return window{}, false
	}
	length, err := pricing.DurationMinutes(start, end, pricing.WrapOvernight)
	if err != nil {
		return window{}, false
	}

	d, err := pricing.ParseDate(date)
	if err != nil {
		return window{}, false
	}
	b, err := pricing.ParseDate(base)
	if err != nil {
		return window{}, false
	}
	offset := int(d.Sub(b).Hours()/24) * 24 * 60

	return window{start: offset + s, end: offset + s + length}, true
}

// findOverlap returns the first existing booking whose slot intersects the candidate.
// existing should hold the pitch's non-cancelled bookings from the day before to the day after.
func findOverlap(candidate Details, existing []Booking) *Booking {
	cw, ok := windowFor(candidate.BookingDate, candidate.StartTime, candidate.EndTime, candidate.BookingDate)
	if !ok {
		return nil
	}

	for i := range existing {
		b := existing[i]
		if b.Status == StatusCancelled {
			continue
		}
		bw, ok := windowFor(b.BookingDate, b.StartTime, b.EndTime, candidate.BookingDate)
		if !ok {
			continue
		}
		if cw.overlaps(bw) {
			return &existing[i]
		}
	}
	return nil
}
