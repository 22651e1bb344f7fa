package middleware

import (
	"context"
	"strings"
	"time"

	"Bizonii-Backend/src/models"
	"Bizonii-Backend/src/utils"

	"github.com/gofiber/fiber/v2"
)

const (
	localUserID    = "userId"
	localEmail     = "email"
	localToken     = "token"
	localExpiresAt = "tokenExpiresAt"
)

// TokenParser verifies an access token.
type TokenParser interface {
	Parse(token string) (*utils.JWTClaims, error)
}

// Blacklist reports logged-out tokens.
type Blacklist interface {
	IsBlacklisted(ctx context.Context, token string) (bool, error)
}

// AuthJWT rejects requests without a valid, non-revoked bearer token and
// stores the caller in the request locals.
func AuthJWT(tokens TokenParser, blacklist Blacklist) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			return utils.HandleError(c, fiber.StatusUnauthorized, "Missing or invalid Authorization header")
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := tokens.Parse(tokenStr)
		if err != nil {
			return utils.HandleError(c, fiber.StatusUnauthorized, "Invalid or expired token")
		}

		if blacklist != nil {
			revoked, err := blacklist.IsBlacklisted(c.UserContext(), tokenStr)
			if err != nil {
				return utils.HandleError(c, fiber.StatusInternalServerError, "Failed to check token")
			}
			if revoked {
				return utils.HandleError(c, fiber.StatusUnauthorized, "Token has been revoked")
			}
		}

		c.Locals(localUserID, claims.UserID)
		c.Locals(localEmail, claims.Email)
		c.Locals(localToken, tokenStr)
		if claims.ExpiresAt != nil {
			c.Locals(localExpiresAt, claims.ExpiresAt.Time)
		}
		return c.Next()
	}
}

// CallerID returns the authenticated user id set by AuthJWT.
func CallerID(c *fiber.Ctx) (string, error) {
	id, ok := c.Locals(localUserID).(string)
	if !ok || id == "" {
		return "", models.ErrUnauthorized
	}
	return id, nil
}

// BearerToken returns the raw token and its expiry as verified by AuthJWT.
func BearerToken(c *fiber.Ctx) (string, time.Time) {
	token, _ := c.Locals(localToken).(string)
	exp, _ := c.Locals(localExpiresAt).(time.Time)
	return token, exp
}
