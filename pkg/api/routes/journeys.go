package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/travigo/tgvmax/pkg/ctdf"
	"github.com/travigo/tgvmax/pkg/dataaggregator"
	"github.com/travigo/tgvmax/pkg/dataaggregator/query"
	"github.com/travigo/tgvmax/pkg/journeyplanner"
)

func (h Handler) JourneysRouter(router fiber.Router) {
	router.Get("/", h.searchJourneys)
}

func (h Handler) searchOptions(c *fiber.Ctx) (journeyplanner.SearchOptions, error) {
	includeTransfers, err := queryBool(c, "transfers", true)
	if err != nil {
		return journeyplanner.SearchOptions{}, err
	}

	levels, err := queryInt(c, "levels", h.DefaultTransferLevels)
	if err != nil {
		return journeyplanner.SearchOptions{}, err
	}

	return journeyplanner.SearchOptions{
		IncludeTransfers:  includeTransfers,
		MaxTransferLevels: levels,
	}, nil
}

func (h Handler) searchJourneys(c *fiber.Ctx) error {
	options, err := h.searchOptions(c)
	if err != nil {
		return sendError(c, fiber.StatusBadRequest, err.Error())
	}

	optimize, err := queryBool(c, "optimize", false)
	if err != nil {
		return sendError(c, fiber.StatusBadRequest, err.Error())
	}

	result, err := dataaggregator.Lookup[*ctdf.JourneySearchResult](h.Aggregator, query.JourneySearch{
		Context: c.UserContext(),
		Params: journeyplanner.JourneyParams{
			Origin:      c.Query("origin"),
			Destination: c.Query("destination"),
			Date:        c.Query("date"),
		},
		Options:      options,
		WithStations: true,
	})
	if err != nil {
		return sendSearchError(c, err)
	}

	if optimize {
		for _, bucket := range result.Destinations {
			bucket.Itineraries = journeyplanner.Optimize(bucket.Itineraries)
		}
	}

	return sendReduced(c, result)
}
