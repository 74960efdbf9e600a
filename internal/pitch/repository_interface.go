package pitch

import "context"

type Repository interface {
	ListByOwner(ctx context.Context, ownerID int) ([]Pitch, error)
	GetByID(ctx context.Context, id int) (*Pitch, error)
	Create(ctx context.Context, ownerID int, req CreatePitchRequest) (*Pitch, error)
	Update(ctx context.Context, id int, patch UpdatePitchRequest) (*Pitch, error)
	Delete(ctx context.Context, id int) error
	CountActive(ctx context.Context, ownerID int) (int, error)
}
