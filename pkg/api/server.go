package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/travigo/tgvmax/pkg/api/routes"
	"github.com/travigo/tgvmax/pkg/config"
	"github.com/travigo/tgvmax/pkg/dataaggregator"
)

func NewApp(aggregator *dataaggregator.Aggregator, cfg *config.Config) *fiber.App {
	webApp := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})
	webApp.Use(NewLogger())

	handler := routes.Handler{
		Aggregator:            aggregator,
		DefaultTransferLevels: cfg.Transfer.MaxLevels,
	}

	group := webApp.Group("/core")

	group.Get("version", routes.APIVersion)

	handler.JourneysRouter(group.Group("/journeys"))
	handler.RoundTripRouter(group.Group("/roundtrip"))
	handler.StationsRouter(group.Group("/stations"))

	return webApp
}

func SetupServer(listen string, aggregator *dataaggregator.Aggregator, cfg *config.Config) error {
	return NewApp(aggregator, cfg).Listen(listen)
}
