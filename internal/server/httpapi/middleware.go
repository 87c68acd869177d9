package httpapi

import (
	"errors"
	"strings"

	"github.com/dkolesnikov/taskvault/internal/common"
	"github.com/dkolesnikov/taskvault/internal/server/auth"
	"github.com/dkolesnikov/taskvault/internal/server/users"
	"github.com/gofiber/fiber/v2"
)

const bearerPrefix = "Bearer "

// protectedHandler is a handler that can only run with a resolved principal.
// The gate is the sole constructor of that value, so no protected endpoint
// can execute unauthenticated.
type protectedHandler func(c *fiber.Ctx, principal *users.User) error

// protected wraps h with the authorization gate: it extracts the bearer
// token, verifies it, resolves the acting user and short-circuits with 401
// on any failure. Registration and login are never routed through it.
func (s *Server) protected(h protectedHandler) fiber.Handler {
	return func(c *fiber.Ctx) error {

		header := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(header, bearerPrefix) {
			return respondMessage(c, fiber.StatusUnauthorized, "Not authorized. No token provided.")
		}

		token := strings.TrimPrefix(header, bearerPrefix)
		if token == "" {
			return respondMessage(c, fiber.StatusUnauthorized, "Not authorized. No token provided.")
		}

		userID, err := auth.GetUserIDFromToken(token, s.jwtSecret)
		if err != nil {
			return s.respondError(c, err)
		}

		principal, err := s.users.Get(c.UserContext(), userID)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return respondMessage(c, fiber.StatusUnauthorized, "User not found. Token invalid.")
			}
			return s.respondError(c, err)
		}

		return h(c, principal)
	}
}
