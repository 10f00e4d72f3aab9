package api

import (
	"github.com/urfave/cli/v2"

	"github.com/dernier-metro/dernier-metro/pkg/config"
	"github.com/dernier-metro/dernier-metro/pkg/database"
	"github.com/dernier-metro/dernier-metro/pkg/repository/postgres"
	"github.com/dernier-metro/dernier-metro/pkg/transit"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "web-api",
		Usage: "Provides the next metro web API",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run web api server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "listen",
						Usage: "listen target for the web server, overrides configuration",
					},
				},
				Action: func(c *cli.Context) error {
					cfg, err := config.Load()
					if err != nil {
						return err
					}

					if err := database.RunMigrations(cfg.PostgresConnection); err != nil {
						return err
					}
					if err := database.Connect(cfg.PostgresConnection); err != nil {
						return err
					}
					defer database.Close()

					fallback, err := cfg.FallbackCalendar()
					if err != nil {
						return err
					}

					schedules := postgres.NewScheduleRepository(database.GlobalPool)
					stations := postgres.NewStationRepository(database.GlobalPool)

					listen := cfg.Listen
					if c.String("listen") != "" {
						listen = c.String("listen")
					}

					return SetupServer(listen, Dependencies{
						Stations:        stations,
						Calculator:      transit.NewCalculator(schedules, fallback, cfg.Timezone),
						DefaultLine:     cfg.DefaultLine(),
						SuggestionLimit: cfg.SuggestionLimit,
						Healthcheck:     database.Healthcheck,
						RequestLog:      postgres.NewAPILogRepository(database.GlobalPool),
					})
				},
			},
		},
	}
}
