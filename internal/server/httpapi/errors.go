package httpapi

import (
	"errors"

	"github.com/dkolesnikov/taskvault/internal/common"
	"github.com/gofiber/fiber/v2"
)

// respondError is the single place where domain failures become HTTP
// statuses. Components below this layer never format HTTP responses.
// Handlers that need a resource-specific 404 text translate
// common.ErrNotFound before calling this.
func (s *Server) respondError(c *fiber.Ctx, err error) error {
	var verr *common.ValidationError

	switch {
	case errors.As(err, &verr):
		return respondMessage(c, fiber.StatusBadRequest, verr.Error())
	case errors.Is(err, common.ErrEmailTaken):
		return respondMessage(c, fiber.StatusBadRequest, "User already exists with this email.")
	case errors.Is(err, common.ErrInvalidCredentials):
		return respondMessage(c, fiber.StatusUnauthorized, "Invalid email or password.")
	case errors.Is(err, common.ErrTokenExpired):
		return respondMessage(c, fiber.StatusUnauthorized, "Token expired. Please log in again.")
	case errors.Is(err, common.ErrInvalidToken), errors.Is(err, common.ErrUnauthorized):
		return respondMessage(c, fiber.StatusUnauthorized, "Not authorized. Invalid token.")
	case errors.Is(err, common.ErrNotFound):
		return respondMessage(c, fiber.StatusNotFound, "Not found.")
	default:
		s.logger.Error(c.UserContext(), "request failed", "method", c.Method(), "path", c.Path(), "error", err.Error())
		return respondMessage(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
}

func respondMessage(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(messageResponse{Message: message})
}
