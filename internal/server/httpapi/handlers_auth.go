package httpapi

import (
	"github.com/gofiber/fiber/v2"
)

func (s *Server) register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return respondMessage(c, fiber.StatusBadRequest, "Invalid request body.")
	}

	user, token, err := s.users.Register(c.UserContext(), req.Name, req.Email, req.Password)
	if err != nil {
		return s.respondError(c, err)
	}

	s.logger.Info(c.UserContext(), "user registered", "user_id", user.ID)

	return c.Status(fiber.StatusCreated).JSON(authResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Token: token,
	})
}

func (s *Server) login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return respondMessage(c, fiber.StatusBadRequest, "Invalid request body.")
	}

	if req.Email == "" || req.Password == "" {
		return respondMessage(c, fiber.StatusBadRequest, "Email and password are required.")
	}

	user, token, err := s.users.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(authResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Token: token,
	})
}
