package auth

import (
	"context"
	"errors"

	"pitchlink/internal/apperr"
)

const (
	RolePlayer = "player"
	RoleOwner  = "owner"
)

// Identity is who the request claims to be, taken from a verified access token.
type Identity struct {
	UserID int
	Email  string
	Role   string
}

// Guard is the single authorization check shared by every owner-scoped operation.
type Guard struct {
	dir Directory
}

func NewGuard(dir Directory) *Guard {
	return &Guard{dir: dir}
}

// Authorize resolves the identity to a stored account, then checks the role (when requiredRole
// is set) and ownership (when resourceOwnerID is non-zero).
func (g *Guard) Authorize(ctx context.Context, id Identity, requiredRole string, resourceOwnerID int) (*Account, error) {
	if id.Email == "" {
		return nil, apperr.Unauthenticated("not signed in")
	}

	acc, err := g.dir.FindAccount(ctx, id.Email)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.Unauthenticated("user not found")
		}
		return nil, err
	}

	if requiredRole != "" && acc.Role != requiredRole {
		return nil, apperr.Unauthorized(requiredRole + " role required")
	}

	if resourceOwnerID != 0 && resourceOwnerID != acc.ID {
		return nil, apperr.Unauthorized("resource belongs to another owner")
	}

	return acc, nil
}

// Owner is Authorize for owner-only operations that don't target an existing resource.
func (g *Guard) Owner(ctx context.Context, id Identity) (*Account, error) {
	return g.Authorize(ctx, id, RoleOwner, 0)
}
