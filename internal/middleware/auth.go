package middleware

import (
	"context"
	"strings"

	"inkwell/internal/models"
	"inkwell/internal/observability"

	"github.com/gofiber/fiber/v2"
)

// AccessTokenVerifier resolves a bearer access token to the principal's user ID.
type AccessTokenVerifier interface {
	VerifyAccessToken(token string) (uint, error)
}

// AuthRequired rejects the request with 401 unless it carries a valid bearer access token.
// On success the principal is stored in c.Locals("userID") and the request context.
func AuthRequired(verifier AccessTokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return unauthorized(c, "Authentication credentials were not provided")
		}

		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return unauthorized(c, "Invalid authorization header format")
		}

		userID, err := verifier.VerifyAccessToken(parts[1])
		if err != nil {
			return unauthorized(c, "Invalid or expired token")
		}

		c.Locals("userID", userID)
		c.SetUserContext(context.WithValue(c.UserContext(), UserIDKey, userID))

		return c.Next()
	}
}

func unauthorized(c *fiber.Ctx, message string) error {
	observability.AuthFailures.WithLabelValues(surfaceLabel(c)).Inc()
	return models.RespondWithError(c, fiber.StatusUnauthorized, models.NewUnauthorizedError(message))
}

func surfaceLabel(c *fiber.Ctx) string {
	if s, ok := c.Locals("surface").(string); ok {
		return s
	}
	return "none"
}
