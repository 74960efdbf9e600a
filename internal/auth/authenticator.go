package auth

import (
	"context"
	"errors"
	"fmt"

	"pitchlink/internal/apperr"
)

const (
	ModePassword = "password"
	ModeTrust    = "trust"
)

var ErrInvalidCredentials = apperr.Unauthenticated("Invalid email or password")

// Account is the slice of a user the auth layer needs.
type Account struct {
	ID           int
	Email        string
	Role         string
	PasswordHash string
}

// Directory resolves accounts by email. Missing accounts are reported as apperr.ErrNotFound.
type Directory interface {
	FindAccount(ctx context.Context, email string) (*Account, error)
}

// Authenticator verifies a sign-in attempt.
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (*Account, error)
	Mode() string
}

func NewAuthenticator(mode string, dir Directory) (Authenticator, error) {
	switch mode {
	case ModePassword:
		return &PasswordAuthenticator{dir: dir}, nil
	case ModeTrust:
		return &TrustAuthenticator{dir: dir}, nil
	default:
		return nil, fmt.Errorf("unknown auth mode %q", mode)
	}
}

// PasswordAuthenticator checks a bcrypt hash.
type PasswordAuthenticator struct {
	dir Directory
}

func (a *PasswordAuthenticator) Mode() string { return ModePassword }

func (a *PasswordAuthenticator) Authenticate(ctx context.Context, email, password string) (*Account, error) {
	acc, err := a.dir.FindAccount(ctx, email)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if acc.PasswordHash == "" || !CheckPassword(acc.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	return acc, nil
}

// TrustAuthenticator signs in anyone whose email exists. Demo and test environments only:
// the password is never looked at.
type TrustAuthenticator struct {
	dir Directory
}

func (a *TrustAuthenticator) Mode() string { return ModeTrust }

func (a *TrustAuthenticator) Authenticate(ctx context.Context, email, _ string) (*Account, error) {
	acc, err := a.dir.FindAccount(ctx, email)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.Unauthenticated("No account found for " + email)
		}
		return nil, err
	}
	return acc, nil
}
