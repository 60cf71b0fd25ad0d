package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/travigo/tgvmax/pkg/ctdf"
	"github.com/travigo/tgvmax/pkg/dataaggregator"
	"github.com/travigo/tgvmax/pkg/dataaggregator/query"
	"github.com/travigo/tgvmax/pkg/journeyplanner"
)

func (h Handler) RoundTripRouter(router fiber.Router) {
	router.Get("/", h.searchRoundTrip)
}

func (h Handler) searchRoundTrip(c *fiber.Ctx) error {
	options, err := h.searchOptions(c)
	if err != nil {
		return sendError(c, fiber.StatusBadRequest, err.Error())
	}

	minStay, err := queryInt(c, "min_stay", journeyplanner.DefaultMinStayDuration)
	if err != nil {
		return sendError(c, fiber.StatusBadRequest, err.Error())
	}

	// Round trips are always presented one journey per departure time
	optimize, err := queryBool(c, "optimize", true)
	if err != nil {
		return sendError(c, fiber.StatusBadRequest, err.Error())
	}

	result, err := dataaggregator.Lookup[*ctdf.RoundTripResult](h.Aggregator, query.RoundTripSearch{
		Context: c.UserContext(),
		Params: journeyplanner.RoundTripParams{
			Origin:       c.Query("origin"),
			Destination:  c.Query("destination"),
			OutboundDate: c.Query("date"),
			ReturnDate:   c.Query("return_date"),
		},
		Options: journeyplanner.RoundTripOptions{
			MinStayDuration:   minStay,
			IncludeTransfers:  options.IncludeTransfers,
			MaxTransferLevels: options.MaxTransferLevels,
			Optimize:          optimize,
		},
		WithStations: true,
	})
	if err != nil {
		return sendSearchError(c, err)
	}

	return sendReduced(c, result)
}
