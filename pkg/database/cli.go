package database

import (
	"github.com/urfave/cli/v2"

	"github.com/dernier-metro/dernier-metro/pkg/config"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "database",
		Usage: "Manage the metro database",
		Subcommands: []*cli.Command{
			{
				Name:  "migrate",
				Usage: "apply schema migrations and seed data",
				Action: func(c *cli.Context) error {
					cfg, err := config.Load()
					if err != nil {
						return err
					}

					return RunMigrations(cfg.PostgresConnection)
				},
			},
		},
	}
}
