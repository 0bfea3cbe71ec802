// Package server exposes the audit pipeline and dataset insights over HTTP.
package server

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"

	"github.com/mmxlabs/mixaudit/internal/model"
	"github.com/mmxlabs/mixaudit/internal/pipeline"
)

// Server wires the HTTP handlers around a pipeline
type Server struct {
	app    *fiber.App
	pipe   *pipeline.Pipeline
	config *model.Config
	logger zerolog.Logger
}

// New creates the HTTP server and registers its routes
func New(pipe *pipeline.Pipeline, cfg *model.Config, logger zerolog.Logger) *Server {
	app := fiber.New(fiber.Config{
		AppName:               "mixaudit API",
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(recover.New())

	s := &Server{
		app:    app,
		pipe:   pipe,
		config: cfg,
		logger: logger,
	}

	app.Use(s.requestLogger)
	s.registerRoutes()

	return s
}

func (s *Server) requestLogger(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()

	s.logger.Info().
		Str("method", c.Method()).
		Str("path", c.Path()).
		Int("status", c.Response().StatusCode()).
		Dur("duration", time.Since(start)).
		Msg("request")

	return err
}

func (s *Server) registerRoutes() {
	s.app.Get("/health", s.Health)
	s.app.Get("/channels", s.Channels)
	s.app.Get("/channel", s.Channel)
	s.app.Get("/safe_range", s.SafeRange)
	s.app.Get("/best_channel", s.BestChannel)
	s.app.Post("/validate", s.Validate)
}

// App returns the underlying fiber app (used by tests)
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen starts serving on the configured address
func (s *Server) Listen() error {
	s.logger.Info().Str("addr", s.config.Server.Addr).Msg("starting HTTP server")
	return s.app.Listen(s.config.Server.Addr)
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
