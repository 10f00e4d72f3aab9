package api

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/dernier-metro/dernier-metro/pkg/api/routes"
	"github.com/dernier-metro/dernier-metro/pkg/apilog"
	"github.com/dernier-metro/dernier-metro/pkg/metrics"
	"github.com/dernier-metro/dernier-metro/pkg/transit"
)

// Dependencies carries everything the web app needs. Repositories are
// capability interfaces so tests can run against in-memory implementations.
type Dependencies struct {
	Stations   transit.StationRepository
	Calculator *transit.Calculator

	DefaultLine     transit.Line
	SuggestionLimit int

	Healthcheck func(ctx context.Context) error
	RequestLog  apilog.Recorder // optional
}

func NewApp(deps Dependencies) *fiber.App {
	metrics.Init()

	webApp := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})
	webApp.Use(NewLogger(deps.RequestLog))

	webApp.Get("/version", routes.APIVersion)
	webApp.Get("/health", routes.Health{Check: deps.Healthcheck}.Handler)
	webApp.Get("/next-metro", routes.NextMetro{
		Stations:        deps.Stations,
		Calculator:      deps.Calculator,
		DefaultLine:     deps.DefaultLine,
		SuggestionLimit: deps.SuggestionLimit,
	}.Handler)
	webApp.Get("/stations", routes.Stations{Stations: deps.Stations}.Handler)
	webApp.Get("/api-docs.json", routes.APIDocs)
	webApp.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	webApp.Use(func(c *fiber.Ctx) error {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"error": "route not found",
		})
	})

	return webApp
}

// SetupServer runs the web app until SIGINT or SIGTERM.
func SetupServer(listen string, deps Dependencies) error {
	webApp := NewApp(deps)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		log.Info().Msg("Shutting down web server")

		if err := webApp.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Error().Err(err).Msg("Failed to shut down web server cleanly")
		}
	}()

	return webApp.Listen(listen)
}
