package auth

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"pitchlink/internal/api"
	"pitchlink/internal/apperr"
	"pitchlink/internal/logger"

	"github.com/gin-gonic/gin"
)

const (
	ctxUserID    = "user_id"
	ctxUserEmail = "user_email"
	ctxUserRole  = "user_role"
	ctxClaims    = "token_claims"
)

// AuthMiddleware verifies the bearer access token. revoker may be nil.
func AuthMiddleware(accessTokenSecret string, revoker Revoker) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			api.Abort(c, http.StatusUnauthorized, "Authorization header required")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.TrimSpace(parts[0]) != "Bearer" {
			api.Abort(c, http.StatusUnauthorized, "Invalid authorization header format")
			return
		}

		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			api.Abort(c, http.StatusUnauthorized, "Token is empty")
			return
		}

		claims, err := ParseToken(tokenString, TokenTypeAccess, accessTokenSecret)
		if err != nil {
			switch {
			case errors.Is(err, ErrTokenExpired):
				api.Abort(c, http.StatusUnauthorized, "Token expired")
			case errors.Is(err, ErrWrongTokenType):
				api.Abort(c, http.StatusUnauthorized, "Access token required")
			default:
				api.Abort(c, http.StatusUnauthorized, "Invalid or malformed token")
			}
			return
		}

		if revoker != nil {
			revoked, err := Revoked(c.Request.Context(), revoker, claims)
			if err != nil {
				// fail open: a redis outage should not sign everybody out
				logger.Warn("token revocation check failed", "error", err)
			} else if revoked {
				api.Abort(c, http.StatusUnauthorized, "Token has been revoked")
				return
			}
		}

		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxUserEmail, claims.Email)
		c.Set(ctxUserRole, claims.Role)
		c.Set(ctxClaims, claims)

		c.Next()
	}
}

func RequireRole(requiredRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(ctxUserRole)
		if !exists {
			api.Abort(c, http.StatusUnauthorized, "User role not found")
			return
		}

		roleStr, ok := role.(string)
		if !ok {
			api.Abort(c, http.StatusUnauthorized, "Invalid role type")
			return
		}

		if roleStr != requiredRole {
			api.Abort(c, http.StatusForbidden, "Insufficient permissions")
			return
		}

		c.Next()
	}
}

func GetUserID(c *gin.Context) (int, bool) {
	userID, exists := c.Get(ctxUserID)
	if !exists {
		return 0, false
	}

	id, ok := userID.(int)
	if !ok {
		return 0, false
	}

	return id, true
}

// CurrentIdentity reads the identity AuthMiddleware stored on the context.
func CurrentIdentity(c *gin.Context) (Identity, bool) {
	id, ok := GetUserID(c)
	if !ok {
		return Identity{}, false
	}
	return Identity{
		UserID: id,
		Email:  c.GetString(ctxUserEmail),
		Role:   c.GetString(ctxUserRole),
	}, true
}

// CurrentClaims returns the verified access token claims.
func CurrentClaims(c *gin.Context) (*JWTClaims, bool) {
	v, ok := c.Get(ctxClaims)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*JWTClaims)
	return claims, ok
}

// SetIdentity is used by tests and internal callers to act as a user without a token.
func SetIdentity(c *gin.Context, id Identity) {
	c.Set(ctxUserID, id.UserID)
	c.Set(ctxUserEmail, id.Email)
	c.Set(ctxUserRole, id.Role)
	c.Set(ctxClaims, &JWTClaims{UserID: id.UserID, Email: id.Email, Role: id.Role, TokenType: TokenTypeAccess})
}

// CheckOwnerParam enforces that an explicit ?owner_id= names the caller.
// An absent parameter means the caller.
func CheckOwnerParam(c *gin.Context, id Identity) error {
	raw := c.Query("owner_id")
	if raw == "" {
		return nil
	}
	ownerID, err := strconv.Atoi(raw)
	if err != nil || ownerID <= 0 {
		return apperr.Validation("owner_id", "owner_id must be a positive integer")
	}
	if ownerID != id.UserID {
		return apperr.Unauthorized("owner_id does not match the signed-in user")
	}
	return nil
}

// RequireIdentity is CurrentIdentity for handlers: it writes the 401 itself.
func RequireIdentity(c *gin.Context) (Identity, bool) {
	id, ok := CurrentIdentity(c)
	if !ok {
		api.Fail(c, apperr.Unauthenticated("not signed in"))
	}
	return id, ok
}
