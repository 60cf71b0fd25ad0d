package api

import (
	"github.com/rs/zerolog/log"
	"github.com/travigo/tgvmax/pkg/config"
	"github.com/travigo/tgvmax/pkg/dataaggregator/global"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "web-api",
		Usage: "Provides the journey search web API",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run web api server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "listen",
						Usage: "listen target for the web server, the configured address when unset",
					},
				},
				Action: func(c *cli.Context) error {
					cfg, err := config.Load(c.String("config"))
					if err != nil {
						return err
					}

					if c.IsSet("listen") {
						cfg.Server.Listen = c.String("listen")
					}

					aggregator, err := global.Setup(c.Context, cfg)
					if err != nil {
						return err
					}

					log.Info().Str("listen", cfg.Server.Listen).Msg("Starting web API")

					return SetupServer(cfg.Server.Listen, aggregator, cfg)
				},
			},
		},
	}
}
