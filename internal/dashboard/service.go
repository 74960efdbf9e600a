package dashboard

import (
	"context"
	"time"

	"pitchlink/internal/auth"
	"pitchlink/internal/pitch"
	"pitchlink/internal/pricing"
)

const (
	recentLimit = 10
	trendDays   = 7
)

type Service interface {
	GetDashboard(ctx context.Context, id auth.Identity) (*Dashboard, error)
}

type service struct {
	repo    Repository
	pitches pitch.Repository
	guard   *auth.Guard
	now     func() time.Time
	loc     *time.Location
}

func NewService(repo Repository, pitches pitch.Repository, guard *auth.Guard, now func() time.Time, loc *time.Location) Service {
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.UTC
	}
	return &service{repo: repo, pitches: pitches, guard: guard, now: now, loc: loc}
}

// WindowFor derives every date the dashboard needs from today.
func WindowFor(today string) Window {
	month := pricing.MonthStart(today)
	return Window{
		Today:          today,
		WeekStart:      pricing.AddDays(today, -7),
		MonthStart:     month,
		NextMonthStart: pricing.MonthStart(pricing.AddDays(month, 32)),
		TrendStart:     pricing.AddDays(today, -(trendDays - 1)),
	}
}

func (s *service) GetDashboard(ctx context.Context, id auth.Identity) (*Dashboard, error) {
	acc, err := s.guard.Owner(ctx, id)
	if err != nil {
		return nil, err
	}

	w := WindowFor(pricing.Today(s.now(), s.loc))

	totals, err := s.repo.Totals(ctx, acc.ID, w)
	if err != nil {
		return nil, err
	}

	active, err := s.pitches.CountActive(ctx, acc.ID)
	if err != nil {
		return nil, err
	}

	recent, err := s.repo.RecentActivity(ctx, acc.ID, recentLimit)
	if err != nil {
		return nil, err
	}

	points, err := s.repo.Trends(ctx, acc.ID, w.TrendStart, w.Today)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		TodayEarnings:         totals.TodayEarnings,
		WeeklyEarnings:        totals.WeeklyEarnings,
		MonthlyEarnings:       totals.MonthlyEarnings,
		PendingBookingsCount:  totals.PendingBookingsCount,
		UpcomingBookingsCount: totals.UpcomingBookingsCount,
		ActivePitchesCount:    active,
		RecentActivity:        recent,
		BookingTrends:         fillTrends(points, w.TrendStart, trendDays),
	}, nil
}

// fillTrends returns one point per day starting at from, oldest first.
func fillTrends(points []TrendPoint, from string, days int) []TrendPoint {
	byDate := make(map[string]TrendPoint, len(points))
	for _, p := range points {
		byDate[p.Date] = p
	}

	out := make([]TrendPoint, 0, days)
	for i := 0; i < days; i++ {
		date := pricing.AddDays(from, i)
		p, ok := byDate[date]
		if !ok {
			p = TrendPoint{Date: date}
		}
		out = append(out, p)
	}
	return out
}
