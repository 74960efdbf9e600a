package analytics

import (
	"context"
	"time"

	"pitchlink/internal/apperr"
	"pitchlink/internal/auth"
	"pitchlink/internal/pricing"
)

const (
	defaultRangeDays = 30
	maxRangeDays     = 366
)

type Service interface {
	GetAnalytics(ctx context.Context, id auth.Identity, from, to string) (*Report, error)
}

type service struct {
	repo  Repository
	guard *auth.Guard
	now   func() time.Time
	loc   *time.Location
}

func NewService(repo Repository, guard *auth.Guard, now func() time.Time, loc *time.Location) Service {
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.UTC
	}
	return &service{repo: repo, guard: guard, now: now, loc: loc}
}

// GetAnalytics defaults to the last 30 days ending today.
func (s *service) GetAnalytics(ctx context.Context, id auth.Identity, from, to string) (*Report, error) {
	acc, err := s.guard.Owner(ctx, id)
	if err != nil {
		return nil, err
	}

	if to == "" {
		to = pricing.Today(s.now(), s.loc)
	}
	if from == "" {
		from = pricing.AddDays(to, -(defaultRangeDays - 1))
	}

	fromDate, err := pricing.ParseDate(from)
	if err != nil {
		return nil, apperr.Validation("from", "from must be a valid YYYY-MM-DD date")
	}
	toDate, err := pricing.ParseDate(to)
	if err != nil {
		return nil, apperr.Validation("to", "to must be a valid YYYY-MM-DD date")
	}
	if toDate.Before(fromDate) {
		return nil, apperr.Validation("to", "to must not be before from")
	}
	// both ends count
	if days := int(toDate.Sub(fromDate).Hours()/24) + 1; days > maxRangeDays {
		return nil, apperr.Validation("from", "range is limited to 366 days")
	}

	days, err := s.repo.Range(ctx, acc.ID, from, to)
	if err != nil {
		return nil, err
	}

	report := &Report{From: from, To: to, Days: days}
	for _, d := range days {
		report.TotalRevenue += d.Revenue
		report.TotalBookings += d.BookingsCount
	}
	return report, nil
}
