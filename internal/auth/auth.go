package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	jwtIssuer   = "pitchlink-api"
	jwtAudience = "pitchlink-users"

	AccessTokenTTL  = 15 * time.Minute
	RefreshTokenTTL = 7 * 24 * time.Hour

	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

var (
	ErrTokenExpired   = errors.New("token expired")
	ErrInvalidToken   = errors.New("invalid token")
	ErrWrongTokenType = errors.New("wrong token type")
	ErrEmptyJWTSecret = errors.New("jwt secret cannot be empty")
)

// Subject is the account a session is issued to.
type Subject struct {
	UserID int
	Email  string
	Role   string
}

// JWTClaims is the payload of both token types. SessionID is shared by an access
// token and the refresh token issued with it, and survives refresh rotation.
type JWTClaims struct {
	UserID    int    `json:"user_id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	TokenType string `json:"token_type"`
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// Session is one signed-in client: an access/refresh pair under a single session id.
type Session struct {
	ID           string
	AccessToken  string
	RefreshToken string
}

func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func CheckPassword(hashedPassword, plainPassword string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(plainPassword)) == nil
}

// NewSession signs a fresh pair for sub.
func NewSession(sub Subject, secret string) (*Session, error) {
	return RotateSession(sub, uuid.NewString(), secret)
}

// RotateSession signs a new pair inside an existing session, so signing out
// still covers tokens issued by later refreshes.
func RotateSession(sub Subject, sessionID, secret string) (*Session, error) {
	if secret == "" {
		return nil, ErrEmptyJWTSecret
	}
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	now := time.Now()
	access, err := sign(sub, sessionID, TokenTypeAccess, secret, now, AccessTokenTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := sign(sub, sessionID, TokenTypeRefresh, secret, now, RefreshTokenTTL)
	if err != nil {
		return nil, err
	}

	return &Session{ID: sessionID, AccessToken: access, RefreshToken: refresh}, nil
}

func sign(sub Subject, sessionID, tokenType, secret string, now time.Time, ttl time.Duration) (string, error) {
	claims := &JWTClaims{
		UserID:    sub.UserID,
		Email:     sub.Email,
		Role:      sub.Role,
		TokenType: tokenType,
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    jwtIssuer,
			Audience:  []string{jwtAudience},
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseToken checks signature, issuer, audience, expiry and that the token is of tokenType.
func ParseToken(token, tokenType, secret string) (*JWTClaims, error) {
	if secret == "" {
		return nil, ErrEmptyJWTSecret
	}

	parsed, err := jwt.ParseWithClaims(
		token,
		&JWTClaims{},
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, ErrInvalidToken
			}
			return []byte(secret), nil
		},
		jwt.WithIssuer(jwtIssuer),
		jwt.WithAudience(jwtAudience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, err
	}

	claims, ok := parsed.Claims.(*JWTClaims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != tokenType {
		return nil, ErrWrongTokenType
	}

	return claims, nil
}

// Revoked reports whether the token itself or its whole session was signed out.
func Revoked(ctx context.Context, r Revoker, c *JWTClaims) (bool, error) {
	if c.SessionID != "" {
		revoked, err := r.IsRevoked(ctx, c.SessionID)
		if err != nil || revoked {
			return revoked, err
		}
	}
	return r.IsRevoked(ctx, c.ID)
}

// Remaining is how long the token stays valid, never negative.
func (c *JWTClaims) Remaining(now time.Time) time.Duration {
	if c.ExpiresAt == nil {
		return 0
	}
	d := c.ExpiresAt.Time.Sub(now)
	if d < 0 {
		return 0
	}
	return d
}
