// Package httpapi exposes the JSON-over-HTTP surface of taskvault: the
// public auth endpoints and the protected profile and task resources behind
// the bearer-token gate.
package httpapi

import (
	"context"
	"time"

	"github.com/dkolesnikov/taskvault/internal/logging"
	"github.com/dkolesnikov/taskvault/internal/server/tasks"
	"github.com/dkolesnikov/taskvault/internal/server/users"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	recoverer "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	app       *fiber.App
	address   string
	logger    logging.Logger
	users     *users.Service
	tasks     *tasks.Service
	jwtSecret []byte
}

func NewServer(address string, l logging.Logger, us *users.Service, ts *tasks.Service, secretKey string) *Server {
	s := &Server{
		address:   address,
		logger:    l.With("module", "http_server"),
		users:     us,
		tasks:     ts,
		jwtSecret: []byte(secretKey),
	}
	s.app = s.buildApp()
	return s
}

func (s *Server) buildApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "taskvault",
		DisableStartupMessage: true,
	})

	app.Use(recoverer.New())
	app.Use(cors.New(cors.Config{AllowCredentials: false}))
	app.Use(metricsMiddleware)

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", s.register)
	authGroup.Post("/login", s.login)

	usersGroup := api.Group("/users")
	usersGroup.Get("/me", s.protected(s.getMe))
	usersGroup.Put("/me", s.protected(s.updateMe))

	tasksGroup := api.Group("/tasks")
	tasksGroup.Get("/", s.protected(s.listTasks))
	tasksGroup.Post("/", s.protected(s.createTask))
	tasksGroup.Put("/:id", s.protected(s.updateTask))
	tasksGroup.Delete("/:id", s.protected(s.deleteTask))

	// unmatched routes
	app.Use(func(c *fiber.Ctx) error {
		return respondMessage(c, fiber.StatusNotFound, "Route not found.")
	})

	return app
}

// App exposes the underlying fiber application for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Run starts accepting connections and blocks until ctx is cancelled, then
// shuts the server down gracefully.
func (s *Server) Run(ctx context.Context) error {

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		if err := s.app.ShutdownWithTimeout(shutdownTimeout); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := s.app.Listen(s.address); err != nil {
		return err
	}

	return nil
}
