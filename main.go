package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/dernier-metro/dernier-metro/pkg/api"
	"github.com/dernier-metro/dernier-metro/pkg/database"

	_ "time/tzdata"
)

func main() {
	// All wall-clock arithmetic happens in the service timezone
	loc, _ := time.LoadLocation("Europe/Paris")
	time.Local = loc

	if os.Getenv("METRO_LOG_FORMAT") != "JSON" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	if os.Getenv("METRO_DEBUG") == "YES" {
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	} else {
		log.Logger = log.Logger.Level(zerolog.InfoLevel)
	}

	app := &cli.App{
		Name:        "dernier-metro",
		Description: "Read-only API telling you when the next (and last) metro arrives",

		Commands: []*cli.Command{
			api.RegisterCLI(),
			database.RegisterCLI(),
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal().Err(err).Send()
	}
}
