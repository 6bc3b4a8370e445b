package server

import (
	"inkwell/internal/models"
	"inkwell/internal/projection"

	"github.com/gofiber/fiber/v2"
)

// ObtainToken handles POST /token: email and password in, access and refresh tokens out.
func (s *Server) ObtainToken(c *fiber.Ctx) error {
	body, err := projection.DecodeTokenObtain(c.Body())
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	pair, err := s.authService.Login(c.UserContext(), body.Email, body.Password)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(pair)
}

// RefreshToken handles POST /token/refresh
func (s *Server) RefreshToken(c *fiber.Ctx) error {
	body, err := projection.DecodeTokenRefresh(c.Body())
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	access, err := s.authService.Refresh(c.UserContext(), body.Refresh)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(access)
}
