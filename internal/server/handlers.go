package server

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/mmxlabs/mixaudit/internal/insights"
)

// Health returns the service health status
func (s *Server) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "healthy",
		"service":   "mixaudit",
		"answering": s.pipe.AnsweringEnabled(),
		"timestamp": time.Now().UTC(),
	})
}

// Channels lists the channel names in the dataset
func (s *Server) Channels(c *fiber.Ctx) error {
	ds, err := s.pipe.Dataset()
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error":   "Failed to load dataset",
			"details": err.Error(),
		})
	}

	return c.JSON(insights.ListChannels(ds))
}

// Channel answers a question about one channel. Without a question it
// returns the deterministic summary; with one it asks the analyst and
// verifies the answer.
func (s *Server) Channel(c *fiber.Ctx) error {
	name := c.Query("name")
	if name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing required query parameter: name",
		})
	}

	question := c.Query("question")
	if question == "" {
		ds, err := s.pipe.Dataset()
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error":   "Failed to load dataset",
				"details": err.Error(),
			})
		}

		insight, err := insights.ChannelSummary(ds, name)
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.JSON(insight)
	}

	if !s.pipe.AnsweringEnabled() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "No LLM provider configured; only deterministic endpoints are available",
		})
	}

	exchange, err := s.pipe.Ask(c.Context(), question, name)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Failed to answer question",
			"details": err.Error(),
		})
	}

	return c.JSON(exchange)
}

// SafeRange returns the observed spend range for a channel
func (s *Server) SafeRange(c *fiber.Ctx) error {
	name := c.Query("name")
	if name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing required query parameter: name",
		})
	}

	ds, err := s.pipe.Dataset()
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error":   "Failed to load dataset",
			"details": err.Error(),
		})
	}

	insight, err := insights.SafeSpendRange(ds, name)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(insight)
}

// BestChannel returns the channel with the highest ROI
func (s *Server) BestChannel(c *fiber.Ctx) error {
	ds, err := s.pipe.Dataset()
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error":   "Failed to load dataset",
			"details": err.Error(),
		})
	}

	insight, err := insights.BestChannelByROI(ds)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(insight)
}

// ValidateRequest is the body for POST /validate
type ValidateRequest struct {
	Question string `json:"question"`
	Response string `json:"response"`
	Channel  string `json:"channel,omitempty"`
}

// Validate verifies an externally generated answer against the dataset
func (s *Server) Validate(c *fiber.Ctx) error {
	var req ValidateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
	}

	if req.Response == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing required field: response",
		})
	}

	report, err := s.pipe.Check(req.Question, req.Response, req.Channel)
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error":   "Failed to validate response",
			"details": err.Error(),
		})
	}

	return c.JSON(report)
}
