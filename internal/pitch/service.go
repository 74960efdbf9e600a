package pitch

import (
	"context"
	"errors"
	"strings"

	"pitchlink/internal/apperr"
	"pitchlink/internal/auth"
	"pitchlink/internal/logger"
	"pitchlink/internal/metrics"
)

type Service interface {
	GetPitches(ctx context.Context, id auth.Identity) ([]Pitch, error)
	GetPitch(ctx context.Context, id auth.Identity, pitchID int) (*Pitch, error)
	CreatePitch(ctx context.Context, id auth.Identity, req CreatePitchRequest) (*Pitch, error)
	UpdatePitch(ctx context.Context, id auth.Identity, pitchID int, patch UpdatePitchRequest) (*Pitch, error)
	DeletePitch(ctx context.Context, id auth.Identity, pitchID int) error
}

type service struct {
	repo  Repository
	guard *auth.Guard
}

func NewService(repo Repository, guard *auth.Guard) Service {
	return &service{repo: repo, guard: guard}
}

func (s *service) GetPitches(ctx context.Context, id auth.Identity) ([]Pitch, error) {
	acc, err := s.guard.Owner(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByOwner(ctx, acc.ID)
}

// GetPitch hides other owners' pitches behind a not-found.
func (s *service) GetPitch(ctx context.Context, id auth.Identity, pitchID int) (*Pitch, error) {
	acc, err := s.guard.Owner(ctx, id)
	if err != nil {
		return nil, err
	}

	p, err := s.repo.GetByID(ctx, pitchID)
	if err != nil {
		return nil, err
	}
	if p.OwnerID != acc.ID {
		return nil, apperr.NotFound("pitch")
	}

	return p, nil
}

func (s *service) CreatePitch(ctx context.Context, id auth.Identity, req CreatePitchRequest) (*Pitch, error) {
	acc, err := s.guard.Owner(ctx, id)
	if err != nil {
		return nil, err
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Location = strings.TrimSpace(req.Location)
	switch {
	case req.Name == "":
		return nil, apperr.Validation("name", "Pitch name is required")
	case req.Location == "":
		return nil, apperr.Validation("location", "Location is required")
	case req.PricePerHour <= 0:
		return nil, apperr.Validation("price_per_hour", "Price per hour must be greater than 0")
	case req.IsActive == nil:
		return nil, apperr.Validation("is_active", "is_active is required")
	}

	p, err := s.repo.Create(ctx, acc.ID, req)
	if err != nil {
		return nil, err
	}

	metrics.PitchesCreatedTotal.Inc()
	logger.Info("pitch created", "pitch_id", p.ID, "owner_id", acc.ID)
	return p, nil
}

func (s *service) UpdatePitch(ctx context.Context, id auth.Identity, pitchID int, patch UpdatePitchRequest) (*Pitch, error) {
	if _, err := s.authorizeOwner(ctx, id, pitchID); err != nil {
		return nil, err
	}

	if err := validatePatch(&patch); err != nil {
		return nil, err
	}

	return s.repo.Update(ctx, pitchID, patch)
}

func (s *service) DeletePitch(ctx context.Context, id auth.Identity, pitchID int) error {
	if _, err := s.authorizeOwner(ctx, id, pitchID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, pitchID); err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			return apperr.Conflict("Pitch still has bookings and cannot be deleted")
		}
		return err
	}

	logger.Info("pitch deleted", "pitch_id", pitchID, "owner_id", id.UserID)
	return nil
}

func (s *service) authorizeOwner(ctx context.Context, id auth.Identity, pitchID int) (*Pitch, error) {
	p, err := s.repo.GetByID(ctx, pitchID)
	if err != nil {
		return nil, err
	}
	if _, err := s.guard.Authorize(ctx, id, auth.RoleOwner, p.OwnerID); err != nil {
		return nil, err
	}
	return p, nil
}

func validatePatch(patch *UpdatePitchRequest) error {
	if patch.empty() {
		return apperr.Validation("body", "No fields to update")
	}
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return apperr.Validation("name", "Pitch name cannot be empty")
		}
		patch.Name = &name
	}
	if patch.Location != nil {
		location := strings.TrimSpace(*patch.Location)
		if location == "" {
			return apperr.Validation("location", "Location cannot be empty")
		}
		patch.Location = &location
	}
	if patch.PricePerHour != nil && *patch.PricePerHour <= 0 {
		return apperr.Validation("price_per_hour", "Price per hour must be greater than 0")
	}
	return nil
}
