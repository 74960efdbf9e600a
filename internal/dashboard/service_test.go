package dashboard

import (
	"context"
	"testing"
	"time"

	"pitchlink/internal/apperr"
	"pitchlink/internal/auth"
	"pitchlink/internal/pitch"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Totals(ctx context.Context, ownerID int, w Window) (*Totals, error) {
	args := m.Called(ctx, ownerID, w)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Totals), args.Error(1)
}

func (m *MockRepository) RecentActivity(ctx context.Context, ownerID, limit int) ([]Activity, error) {
	args := m.Called(ctx, ownerID, limit)
	return args.Get(0).([]Activity), args.Error(1)
}

func (m *MockRepository) Trends(ctx context.Context, ownerID int, from, to string) ([]TrendPoint, error) {
	args := m.Called(ctx, ownerID, from, to)
	return args.Get(0).([]TrendPoint), args.Error(1)
}

type MockPitches struct {
	pitch.Repository
	mock.Mock
}

func (m *MockPitches) CountActive(ctx context.Context, ownerID int) (int, error) {
	args := m.Called(ctx, ownerID)
	return args.Int(0), args.Error(1)
}

type directory map[string]*auth.Account

func (d directory) FindAccount(_ context.Context, email string) (*auth.Account, error) {
	if acc, ok := d[email]; ok {
		return acc, nil
	}
	return nil, apperr.NotFound("user")
}

var (
	owner  = auth.Identity{UserID: 1, Email: "o@pitch.ng", Role: auth.RoleOwner}
	player = auth.Identity{UserID: 3, Email: "p@pitch.ng", Role: auth.RolePlayer}
	guard  = auth.NewGuard(directory{
		owner.Email:  {ID: 1, Email: owner.Email, Role: auth.RoleOwner},
		player.Email: {ID: 3, Email: player.Email, Role: auth.RolePlayer},
	})
	// 23:30 UTC is already the next day in Lagos
	clock = func() time.Time { return time.Date(2025, 3, 14, 23, 30, 0, 0, time.UTC) }
)

func lagos(t *testing.T) *time.Location {
	loc, err := time.LoadLocation("Africa/Lagos")
	require.NoError(t, err)
	return loc
}

func TestWindowFor(t *testing.T) {
	w := WindowFor("2024-12-31")
	assert.Equal(t, "2024-12-24", w.WeekStart)
	assert.Equal(t, "2024-12-01", w.MonthStart)
	assert.Equal(t, "2025-01-01", w.NextMonthStart)
	assert.Equal(t, "2024-12-25", w.TrendStart)

	w = WindowFor("2024-01-31")
	assert.Equal(t, "2024-02-01", w.NextMonthStart)
}

func TestGetDashboard(t *testing.T) {
	repo := new(MockRepository)
	pitches := new(MockPitches)

	w := WindowFor("2025-03-15")
	repo.On("Totals", mock.Anything, 1, w).Return(&Totals{TodayEarnings: 0, PendingBookingsCount: 1, UpcomingBookingsCount: 2}, nil)
	repo.On("RecentActivity", mock.Anything, 1, 10).Return([]Activity{{ID: 1}}, nil)
	repo.On("Trends", mock.Anything, 1, "2025-03-09", "2025-03-15").Return([]TrendPoint{
		{Date: "2025-03-10", Bookings: 2, Revenue: 10000},
		{Date: "2025-03-15", Bookings: 1, Revenue: 0},
	}, nil)
	pitches.On("CountActive", mock.Anything, 1).Return(2, nil)

	d, err := NewService(repo, pitches, guard, clock, lagos(t)).GetDashboard(context.Background(), owner)
	require.NoError(t, err)

	assert.Equal(t, 0.0, d.TodayEarnings)
	assert.Equal(t, 1, d.PendingBookingsCount)
	assert.Equal(t, 2, d.ActivePitchesCount)
	require.Len(t, d.BookingTrends, 7)
	assert.Equal(t, "2025-03-09", d.BookingTrends[0].Date)
	assert.Equal(t, 0, d.BookingTrends[0].Bookings)
	assert.Equal(t, 10000.0, d.BookingTrends[1].Revenue)
	assert.Equal(t, "2025-03-15", d.BookingTrends[6].Date)
	repo.AssertExpectations(t)
}

func TestGetDashboardPlayerIsUnauthorized(t *testing.T) {
	_, err := NewService(new(MockRepository), new(MockPitches), guard, clock, lagos(t)).GetDashboard(context.Background(), player)
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
}

func TestFillTrends(t *testing.T) {
	got := fillTrends(nil, "2025-02-26", 7)
	require.Len(t, got, 7)
	assert.Equal(t, "2025-03-04", got[6].Date)
	for _, p := range got {
		assert.Zero(t, p.Bookings)
	}
}
