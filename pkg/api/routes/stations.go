package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/dernier-metro/dernier-metro/pkg/transit"
)

type Stations struct {
	Stations transit.StationRepository
}

func (h Stations) Handler(c *fiber.Ctx) error {
	stations, err := h.Stations.All(c.UserContext())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list stations")

		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "internal server error",
		})
	}

	summaries := make([]fiber.Map, 0, len(stations))
	for _, station := range stations {
		summaries = append(summaries, fiber.Map{
			"name":          station.Name,
			"slug":          station.Slug,
			"zone":          station.Zone,
			"accessibility": station.Accessibility,
		})
	}

	return c.JSON(fiber.Map{
		"stations": summaries,
		"count":    len(stations),
	})
}
