package user

import (
	"context"
	"strings"

	"pitchlink/internal/auth"
)

// Directory exposes users to the auth package as accounts.
type Directory struct {
	repo Repository
}

func NewDirectory(repo Repository) *Directory {
	return &Directory{repo: repo}
}

func (d *Directory) FindAccount(ctx context.Context, email string) (*auth.Account, error) {
	u, err := d.repo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, err
	}

	acc := &auth.Account{ID: u.ID, Email: u.Email, Role: u.Role}
	if u.PasswordHash != nil {
		acc.PasswordHash = *u.PasswordHash
	}
	return acc, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
