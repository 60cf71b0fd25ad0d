package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/travigo/tgvmax/pkg/ctdf"
	"github.com/travigo/tgvmax/pkg/dataaggregator"
	"github.com/travigo/tgvmax/pkg/dataaggregator/query"
	"github.com/travigo/tgvmax/pkg/stations"
)

func (h Handler) StationsRouter(router fiber.Router) {
	router.Get("/suggestions", h.stationSuggestions)
	router.Get("/status", h.stationStatus)
	router.Get("/:code", h.getStation)
}

func (h Handler) stationSuggestions(c *fiber.Ctx) error {
	suggestions, err := dataaggregator.Lookup[[]ctdf.Station](h.Aggregator, query.StationSuggestions{
		Context: c.UserContext(),
		Query:   c.Query("q"),
	})
	if err != nil {
		return sendError(c, fiber.StatusBadGateway, err.Error())
	}

	return sendReduced(c, suggestions)
}

func (h Handler) getStation(c *fiber.Ctx) error {
	code := c.Params("code")

	station, err := dataaggregator.Lookup[*ctdf.Station](h.Aggregator, query.Station{
		Context: c.UserContext(),
		Code:    code,
	})
	if err != nil {
		return sendError(c, fiber.StatusBadGateway, err.Error())
	}

	if station == nil {
		return sendError(c, fiber.StatusNotFound, "Could not find Station matching code")
	}

	return sendReduced(c, station)
}

func (h Handler) stationStatus(c *fiber.Ctx) error {
	status, err := dataaggregator.Lookup[stations.Status](h.Aggregator, query.StationDatasetStatus{})
	if err != nil {
		return sendError(c, fiber.StatusInternalServerError, err.Error())
	}

	return sendReduced(c, status)
}
