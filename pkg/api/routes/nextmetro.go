package routes

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/dernier-metro/dernier-metro/pkg/metrics"
	"github.com/dernier-metro/dernier-metro/pkg/transit"
)

type NextMetro struct {
	Stations   transit.StationRepository
	Calculator *transit.Calculator

	DefaultLine     transit.Line
	SuggestionLimit int
}

func (h NextMetro) Handler(c *fiber.Ctx) error {
	search := c.Query("station")
	if search == "" {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "missing station",
		})
	}

	now := time.Now()
	if datetimeQuery := c.Query("datetime"); datetimeQuery != "" {
		parsed, err := time.Parse(time.RFC3339, datetimeQuery)
		if err != nil {
			c.SendStatus(fiber.StatusBadRequest)
			return c.JSON(fiber.Map{
				"error": "Parameter datetime should be an RFC3339/ISO8601 datetime",
			})
		}
		now = parsed
	}

	ctx := c.UserContext()

	station, err := h.Stations.FindByNameOrSlug(ctx, search)
	if errors.Is(err, transit.ErrStationNotFound) {
		metrics.StationMiss()

		suggestions, err := h.Stations.Suggest(ctx, search, h.SuggestionLimit)
		if err != nil {
			log.Error().Err(err).Str("station", search).Msg("Failed to load suggestions")
		}

		names := make([]string, 0, len(suggestions))
		for _, suggestion := range suggestions {
			names = append(names, suggestion.Name)
		}

		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"error":       "unknown station",
			"suggestions": names,
		})
	}
	if err != nil {
		log.Error().Err(err).Str("station", search).Msg("Failed to resolve station")

		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "internal server error",
		})
	}

	line := station.PrimaryLine(h.DefaultLine)

	result, err := h.Calculator.NextArrival(ctx, line.Code, now)
	if err != nil {
		log.Error().Err(err).Str("line", line.Code).Msg("Failed to compute next arrival")

		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "internal server error",
		})
	}

	if result.Closed {
		return c.JSON(fiber.Map{
			"station": station.Name,
			"line":    line.Code,
			"service": "closed",
			"tz":      result.Timezone,
		})
	}

	if result.Next.DayType == "" {
		metrics.CalendarFallback()
	}

	response := fiber.Map{
		"station":       station.Name,
		"line":          line.Code,
		"headwayMin":    result.Next.HeadwayMinutes,
		"nextArrival":   result.Next.Arrival.String(),
		"isLast":        result.Next.IsLast,
		"tz":            result.Timezone,
		"zone":          station.Zone,
		"accessibility": station.Accessibility,
	}
	// Only schedule-backed results know their day type
	if result.Next.DayType != "" {
		response["dayType"] = string(result.Next.DayType)
	}

	return c.JSON(response)
}
