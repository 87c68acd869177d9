package httpapi

import (
	"errors"

	"github.com/dkolesnikov/taskvault/internal/common"
	"github.com/dkolesnikov/taskvault/internal/server/users"
	"github.com/gofiber/fiber/v2"
)

func (s *Server) getMe(c *fiber.Ctx, principal *users.User) error {
	return c.Status(fiber.StatusOK).JSON(principal)
}

func (s *Server) updateMe(c *fiber.Ctx, principal *users.User) error {
	var req updateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return respondMessage(c, fiber.StatusBadRequest, "Invalid request body.")
	}

	updated, err := s.users.UpdateProfile(c.UserContext(), principal.ID, users.ProfileUpdate{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return respondMessage(c, fiber.StatusNotFound, "User not found.")
		}
		return s.respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(updated)
}
