package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pitchlink/internal/apperr"
	"pitchlink/internal/auth"
	"pitchlink/internal/logger"
)

var ErrEmailExists = apperr.Conflict("User with this email already exists")

const minPasswordLength = 8

type Service interface {
	SignUp(ctx context.Context, req SignUpRequest) (*AuthResponse, error)
	SignIn(ctx context.Context, req SignInRequest) (*AuthResponse, error)
	SignOut(ctx context.Context, claims *auth.JWTClaims) error
	GetCurrentUser(ctx context.Context, userID int) (*User, error)
	Refresh(ctx context.Context, refreshToken string) (*AuthResponse, error)
}

type service struct {
	repo          Repository
	authenticator auth.Authenticator
	revoker       auth.Revoker
	jwtSecret     string
	now           func() time.Time
}

// NewService wires sign-in through authenticator. revoker may be nil, in which case
// sign-out only succeeds and tokens live until they expire.
func NewService(repo Repository, authenticator auth.Authenticator, revoker auth.Revoker, jwtSecret string) Service {
	return &service{
		repo:          repo,
		authenticator: authenticator,
		revoker:       revoker,
		jwtSecret:     jwtSecret,
		now:           time.Now,
	}
}

func (s *service) SignUp(ctx context.Context, req SignUpRequest) (*AuthResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperr.Validation("name", "Name is required")
	}
	email := normalizeEmail(req.Email)

	var passwordHash *string
	switch {
	case req.Password != "":
		if len(req.Password) < minPasswordLength {
			return nil, apperr.Validation("password", fmt.Sprintf("Password must be at least %d characters", minPasswordLength))
		}
		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		passwordHash = &hash
	case s.authenticator.Mode() == auth.ModePassword:
		return nil, apperr.Validation("password", "Password is required")
	}

	exists, err := s.repo.EmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailExists
	}

	user, err := s.repo.Create(ctx, name, email, req.Phone, passwordHash, req.Role)
	if err != nil {
		// lost the race against a concurrent sign-up
		if errors.Is(err, apperr.ErrConflict) {
			return nil, ErrEmailExists
		}
		return nil, err
	}

	logger.Info("user signed up", "user_id", user.ID, "role", user.Role)
	return s.issue(user)
}

func (s *service) SignIn(ctx context.Context, req SignInRequest) (*AuthResponse, error) {
	acc, err := s.authenticator.Authenticate(ctx, normalizeEmail(req.Email), req.Password)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.FindByID(ctx, acc.ID)
	if err != nil {
		return nil, err
	}

	return s.issue(user)
}

// SignOut revokes the caller's whole session, so the refresh token issued with the
// access token stops working too.
func (s *service) SignOut(ctx context.Context, claims *auth.JWTClaims) error {
	if claims == nil {
		return apperr.Unauthenticated("not signed in")
	}
	if s.revoker == nil {
		return nil
	}

	// a session outlives any single token; every live token in it expires within the refresh TTL
	key, ttl := claims.SessionID, auth.RefreshTokenTTL
	if key == "" {
		key, ttl = claims.ID, claims.Remaining(s.now())
	}
	if err := s.revoker.Revoke(ctx, key, ttl); err != nil {
		return apperr.Unavailable(fmt.Errorf("revoke session: %w", err))
	}
	logger.Info("user signed out", "user_id", claims.UserID)
	return nil
}

func (s *service) GetCurrentUser(ctx context.Context, userID int) (*User, error) {
	return s.repo.FindByID(ctx, userID)
}

// Refresh rotates the pair inside the same session. The presented refresh token is
// revoked once the new pair is issued.
func (s *service) Refresh(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	claims, err := auth.ParseToken(refreshToken, auth.TokenTypeRefresh, s.jwtSecret)
	if err != nil {
		return nil, apperr.Unauthenticated("Invalid or expired refresh token")
	}

	if s.revoker != nil {
		revoked, err := auth.Revoked(ctx, s.revoker, claims)
		if err != nil {
			return nil, apperr.Unavailable(fmt.Errorf("revocation check: %w", err))
		}
		if revoked {
			return nil, apperr.Unauthenticated("Refresh token has been revoked")
		}
	}

	user, err := s.repo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.Unauthenticated("User no longer exists")
		}
		return nil, err
	}

	session, err := auth.RotateSession(subjectOf(user), claims.SessionID, s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("rotate session: %w", err)
	}

	if s.revoker != nil {
		if err := s.revoker.Revoke(ctx, claims.ID, claims.Remaining(s.now())); err != nil {
			logger.Warn("failed to revoke rotated refresh token", "user_id", user.ID, "error", err)
		}
	}

	return response(session, user), nil
}

func (s *service) issue(user *User) (*AuthResponse, error) {
	session, err := auth.NewSession(subjectOf(user), s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("start session: %w", err)
	}
	return response(session, user), nil
}

func subjectOf(u *User) auth.Subject {
	return auth.Subject{UserID: u.ID, Email: u.Email, Role: u.Role}
}

func response(session *auth.Session, u *User) *AuthResponse {
	return &AuthResponse{
		AccessToken:  session.AccessToken,
		RefreshToken: session.RefreshToken,
		User:         *u,
	}
}
