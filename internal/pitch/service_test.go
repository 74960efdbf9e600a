package pitch

import (
	"context"
	"testing"

	"pitchlink/internal/apperr"
	"pitchlink/internal/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) ListByOwner(ctx context.Context, ownerID int) ([]Pitch, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]Pitch), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, id int) (*Pitch, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Pitch), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, ownerID int, req CreatePitchRequest) (*Pitch, error) {
	args := m.Called(ctx, ownerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Pitch), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, id int, patch UpdatePitchRequest) (*Pitch, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Pitch), args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockRepository) CountActive(ctx context.Context, ownerID int) (int, error) {
	args := m.Called(ctx, ownerID)
	return args.Int(0), args.Error(1)
}

// directory is a fixed set of accounts keyed by email.
type directory map[string]*auth.Account

func (d directory) FindAccount(_ context.Context, email string) (*auth.Account, error) {
	if acc, ok := d[email]; ok {
		return acc, nil
	}
	return nil, apperr.NotFound("user")
}

var (
	ownerA = auth.Identity{UserID: 1, Email: "a@pitch.ng", Role: auth.RoleOwner}
	ownerB = auth.Identity{UserID: 2, Email: "b@pitch.ng", Role: auth.RoleOwner}
	player = auth.Identity{UserID: 3, Email: "p@pitch.ng", Role: auth.RolePlayer}

	accounts = directory{
		ownerA.Email: {ID: 1, Email: ownerA.Email, Role: auth.RoleOwner},
		ownerB.Email: {ID: 2, Email: ownerB.Email, Role: auth.RoleOwner},
		player.Email: {ID: 3, Email: player.Email, Role: auth.RolePlayer},
	}
)

func newTestService(repo Repository) Service {
	return NewService(repo, auth.NewGuard(accounts))
}

func boolPtr(b bool) *bool { return &b }

func TestCreatePitchAsPlayerIsUnauthorized(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo)

	_, err := svc.CreatePitch(context.Background(), player, CreatePitchRequest{
		Name: "Turf", Location: "Ikeja", PricePerHour: 10000, IsActive: boolPtr(true),
	})

	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateForeignPitchIsUnauthorized(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetByID", mock.Anything, 10).Return(&Pitch{ID: 10, OwnerID: ownerA.UserID}, nil)
	svc := newTestService(repo)

	name := "Hijacked"
	_, err := svc.UpdatePitch(context.Background(), ownerB, 10, UpdatePitchRequest{Name: &name})

	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestServiceCreatePitch(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo)

	req := CreatePitchRequest{Name: "  Turf  ", Location: "Ikeja", PricePerHour: 10000, IsActive: boolPtr(true)}
	want := req
	want.Name = "Turf"
	repo.On("Create", mock.Anything, ownerA.UserID, want).Return(&Pitch{ID: 10, OwnerID: 1, Name: "Turf"}, nil)

	p, err := svc.CreatePitch(context.Background(), ownerA, req)
	require.NoError(t, err)
	assert.Equal(t, 10, p.ID)
	repo.AssertExpectations(t)
}

func TestCreatePitchValidation(t *testing.T) {
	tests := []struct {
		name  string
		req   CreatePitchRequest
		field string
	}{
		{"blank name", CreatePitchRequest{Name: " ", Location: "Ikeja", PricePerHour: 1, IsActive: boolPtr(true)}, "name"},
		{"blank location", CreatePitchRequest{Name: "Turf", PricePerHour: 1, IsActive: boolPtr(true)}, "location"},
		{"zero price", CreatePitchRequest{Name: "Turf", Location: "Ikeja", IsActive: boolPtr(true)}, "price_per_hour"},
		{"missing is_active", CreatePitchRequest{Name: "Turf", Location: "Ikeja", PricePerHour: 1}, "is_active"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestService(new(MockRepository)).CreatePitch(context.Background(), ownerA, tt.req)

			var ve *apperr.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestGetPitchOfAnotherOwnerIsNotFound(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetByID", mock.Anything, 10).Return(&Pitch{ID: 10, OwnerID: ownerA.UserID}, nil)
	svc := newTestService(repo)

	_, err := svc.GetPitch(context.Background(), ownerB, 10)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	p, err := svc.GetPitch(context.Background(), ownerA, 10)
	require.NoError(t, err)
	assert.Equal(t, 10, p.ID)
}

func TestUpdatePitchPassesPatchThrough(t *testing.T) {
	repo := new(MockRepository)
	name := "New Name"
	repo.On("GetByID", mock.Anything, 10).Return(&Pitch{ID: 10, OwnerID: ownerA.UserID}, nil)
	repo.On("Update", mock.Anything, 10, UpdatePitchRequest{Name: &name}).
		Return(&Pitch{ID: 10, OwnerID: 1, Name: name, Location: "Lekki"}, nil)

	p, err := newTestService(repo).UpdatePitch(context.Background(), ownerA, 10, UpdatePitchRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Lekki", p.Location)
	repo.AssertExpectations(t)
}

func TestUpdatePitchRejectsEmptyPatch(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetByID", mock.Anything, 10).Return(&Pitch{ID: 10, OwnerID: ownerA.UserID}, nil)

	_, err := newTestService(repo).UpdatePitch(context.Background(), ownerA, 10, UpdatePitchRequest{})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	price := -5.0
	_, err = newTestService(repo).UpdatePitch(context.Background(), ownerA, 10, UpdatePitchRequest{PricePerHour: &price})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestDeletePitchWithBookings(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetByID", mock.Anything, 10).Return(&Pitch{ID: 10, OwnerID: ownerA.UserID}, nil)
	repo.On("Delete", mock.Anything, 10).Return(apperr.Conflict("pitch is still referenced by other records"))

	err := newTestService(repo).DeletePitch(context.Background(), ownerA, 10)
	assert.ErrorIs(t, err, apperr.ErrConflict)
	assert.EqualError(t, err, "Pitch still has bookings and cannot be deleted")
}

func TestGetPitchesUnknownUser(t *testing.T) {
	ghost := auth.Identity{UserID: 99, Email: "ghost@pitch.ng", Role: auth.RoleOwner}
	_, err := newTestService(new(MockRepository)).GetPitches(context.Background(), ghost)
	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
}
