package routes

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

type Health struct {
	Check func(ctx context.Context) error
}

func (h Health) Handler(c *fiber.Ctx) error {
	if err := h.Check(c.UserContext()); err != nil {
		log.Error().Err(err).Msg("Database healthcheck failed")

		c.SendStatus(fiber.StatusServiceUnavailable)
		return c.JSON(fiber.Map{
			"error":  "database connection failed",
			"status": "unhealthy",
		})
	}

	return c.JSON(fiber.Map{
		"status":    "ok",
		"database":  "connected",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
