package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/travigo/tgvmax/pkg/api"
	journeyplannercli "github.com/travigo/tgvmax/pkg/journeyplanner/cli"
	"github.com/travigo/tgvmax/pkg/stations"
	"github.com/urfave/cli/v2"
)

func main() {
	if os.Getenv("TGVMAX_LOG_FORMAT") != "JSON" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	if os.Getenv("TGVMAX_DEBUG") == "YES" {
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	} else {
		log.Logger = log.Logger.Level(zerolog.InfoLevel)
	}

	commands := []*cli.Command{
		api.RegisterCLI(),
		stations.RegisterCLI(),
	}
	commands = append(commands, journeyplannercli.RegisterCLI()...)

	app := &cli.App{
		Name:        "tgvmax",
		Description: "Finds TGVmax journeys, connections and round trips",

		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "path to a YAML configuration file",
				EnvVars: []string{"TGVMAX_CONFIG"},
			},
		},

		Commands: commands,
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal().Err(err).Send()
	}
}
