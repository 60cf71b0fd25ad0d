package journeyplanner

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/travigo/tgvmax/pkg/config"
	"github.com/travigo/tgvmax/pkg/ctdf"
	"github.com/travigo/tgvmax/pkg/util"
)

var (
	ErrInvalidParams = errors.New("invalid search parameters")

	// ErrSearchIncomplete means nothing was found but at least one fetch
	// failed, so the empty result cannot be trusted
	ErrSearchIncomplete = errors.New("search could not be completed")
)

type JourneyParams struct {
	Origin      string `validate:"required"`
	Destination string
	Date        string `validate:"required,datetime=2006-01-02"`
}

type SearchOptions struct {
	IncludeTransfers  bool
	MaxTransferLevels int `validate:"gte=0"`
}

func DefaultSearchOptions() SearchOptions {
	return SearchOptions{
		IncludeTransfers:  true,
		MaxTransferLevels: 1,
	}
}

func (params *JourneyParams) normalise() {
	params.Origin = util.NormaliseStationCode(params.Origin)
	params.Destination = util.NormaliseStationCode(params.Destination)
}

func validateSearch(params JourneyParams, options SearchOptions) error {
	if err := validate.Struct(params); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidParams, err)
	}
	if err := validate.Struct(options); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidParams, err)
	}
	if options.MaxTransferLevels > config.MaxTransferLevelsCap {
		return fmt.Errorf("%w: at most %d transfer levels are supported", ErrInvalidParams, config.MaxTransferLevelsCap)
	}

	return nil
}

// SearchJourneys finds every direct train from the origin and, when asked,
// every itinerary with up to MaxTransferLevels connections.
func (p *Planner) SearchJourneys(ctx context.Context, params JourneyParams, options SearchOptions) (*ctdf.JourneySearchResult, error) {
	params.normalise()
	if err := validateSearch(params, options); err != nil {
		return nil, err
	}

	maxLevels := options.MaxTransferLevels
	if !options.IncludeTransfers {
		maxLevels = 0
	}

	result := ctdf.NewJourneySearchResult(ctdf.JourneySearchMetadata{
		SearchDate:      params.Date,
		OriginCode:      params.Origin,
		DestinationCode: params.Destination,
		MaxLevels:       maxLevels,
	})

	var fetchErrors []error

	direct := p.SearchDirect(ctx, params.Origin, params.Date, params.Destination)
	if direct.Err != nil {
		fetchErrors = append(fetchErrors, direct.Err)
	}
	result.Truncated = direct.Truncated
	bucketDirect(result, direct.Records)

	if maxLevels > 0 {
		// Hubs need not be the destination, so the seed is every departure
		seedRecords := direct.Records
		if params.Destination != "" {
			seed := p.SearchDirect(ctx, params.Origin, params.Date, "")
			if seed.Err != nil {
				fetchErrors = append(fetchErrors, seed.Err)
			}
			result.Truncated = result.Truncated || seed.Truncated
			seedRecords = seed.Records
		}

		seedTrips := make([]ctdf.Trip, 0, len(seedRecords))
		for _, record := range seedRecords {
			seedTrips = append(seedTrips, ctdf.NewDirectLeg(record))
		}

		transfers := p.SearchTransfers(ctx, params.Origin, params.Destination, params.Date, seedTrips, maxLevels)
		for _, itinerary := range transfers.Itineraries {
			result.Add(itinerary)
		}
		result.Truncated = result.Truncated || transfers.Truncated
	}

	directCount, transferCount := result.Counts()
	log.Debug().
		Str("origin", params.Origin).
		Str("destination", params.Destination).
		Str("date", params.Date).
		Int("destinations", len(result.Destinations)).
		Int("direct", directCount).
		Int("transfer", transferCount).
		Bool("truncated", result.Truncated).
		Msg("Journey search complete")

	if result.Empty() && result.Truncated {
		cause := errors.Join(fetchErrors...)
		if cause == nil {
			return nil, ErrSearchIncomplete
		}
		return nil, fmt.Errorf("%w: %w", ErrSearchIncomplete, cause)
	}

	return result, nil
}
