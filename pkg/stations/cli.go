package stations

import (
	"fmt"
	"time"

	"github.com/travigo/tgvmax/pkg/config"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "stations",
		Usage: "Look up stations from the stations dataset",
		Subcommands: []*cli.Command{
			{
				Name:      "suggest",
				Usage:     "list stations matching a name",
				ArgsUsage: "<query>",
				Action: func(c *cli.Context) error {
					service, err := serviceFromCLI(c)
					if err != nil {
						return err
					}

					suggestions, err := service.Suggestions(c.Context, c.Args().First())
					if err != nil {
						return err
					}

					for _, station := range suggestions {
						fmt.Fprintf(c.App.Writer, "%s\t%s\n", station.Code, station.Name)
					}

					return nil
				},
			},
			{
				Name:      "get",
				Usage:     "show a station by its code",
				ArgsUsage: "<code>",
				Action: func(c *cli.Context) error {
					service, err := serviceFromCLI(c)
					if err != nil {
						return err
					}

					station, err := service.GetStationByCode(c.Context, c.Args().First())
					if err != nil {
						return err
					}
					if station == nil {
						return cli.Exit(fmt.Sprintf("unknown station %q", c.Args().First()), 1)
					}

					fmt.Fprintf(c.App.Writer, "%s\t%s\t%f,%f\n", station.Code, station.Name, station.Location.Latitude(), station.Location.Longitude())

					return nil
				},
			},
			{
				Name:  "status",
				Usage: "load the dataset and report its state",
				Action: func(c *cli.Context) error {
					service, err := serviceFromCLI(c)
					if err != nil {
						return err
					}

					if err := service.Reload(c.Context); err != nil {
						return err
					}

					status := service.Status()
					fmt.Fprintf(c.App.Writer, "stations: %d\nloaded: %s\nexpires in: %ds\n", status.StationCount, status.LastUpdate.Format(time.RFC3339), status.CacheExpiresIn)

					return nil
				},
			},
		},
	}
}

func serviceFromCLI(c *cli.Context) (*Service, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}

	return NewService(cfg.Stations), nil
}
