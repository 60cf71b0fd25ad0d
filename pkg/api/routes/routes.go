package routes

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"
	"github.com/rs/zerolog/log"
	"github.com/travigo/tgvmax/pkg/dataaggregator"
	"github.com/travigo/tgvmax/pkg/journeyplanner"
)

// Handler serves the API routes from the aggregator's data sources
type Handler struct {
	Aggregator *dataaggregator.Aggregator

	// DefaultTransferLevels applies when a request does not ask for a level
	DefaultTransferLevels int
}

func groups(c *fiber.Ctx) []string {
	if c.Query("summary") == "true" {
		return []string{"basic"}
	}
	return []string{"basic", "detailed"}
}

func sendReduced(c *fiber.Ctx, value any) error {
	reduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: groups(c),
	}, value)
	if err != nil {
		log.Error().Err(err).Msg("Failed to reduce response")

		c.Status(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Sheriff could not reduce response",
		})
	}

	return c.JSON(reduced)
}

func sendError(c *fiber.Ctx, status int, message string) error {
	c.Status(status)
	return c.JSON(fiber.Map{
		"error": message,
	})
}

// sendSearchError tells apart bad requests from searches that could not run
func sendSearchError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, journeyplanner.ErrInvalidParams):
		return sendError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, journeyplanner.ErrSearchIncomplete):
		return sendError(c, fiber.StatusBadGateway, err.Error())
	default:
		return sendError(c, fiber.StatusInternalServerError, err.Error())
	}
}
