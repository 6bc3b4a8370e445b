package server

import (
	"errors"

	"inkwell/internal/config"
	"inkwell/internal/models"
	"inkwell/internal/surface"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// SurfacesFor returns both route tables without connecting to any backing store.
// Handlers in the returned tables must not be invoked.
func SurfacesFor(cfg *config.Config) []surface.Surface {
	return (&Server{config: cfg}).Surfaces()
}

// parseID extracts a route parameter as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
func parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+param+": a positive integer is required."))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// principal returns the authenticated user id stored by AuthRequired.
func principal(c *fiber.Ctx) (uint, bool) {
	id, ok := c.Locals("userID").(uint)
	return id, ok && id != 0
}
