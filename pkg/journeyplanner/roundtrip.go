package journeyplanner

import (
	"context"
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
	"github.com/travigo/tgvmax/pkg/ctdf"
	"github.com/travigo/tgvmax/pkg/util"
)

const DefaultMinStayDuration = 60

type RoundTripParams struct {
	Origin       string `validate:"required"`
	Destination  string
	OutboundDate string `validate:"required,datetime=2006-01-02"`
	ReturnDate   string `validate:"required,datetime=2006-01-02"`
}

type RoundTripOptions struct {
	// MinStayDuration in minutes, DefaultMinStayDuration when zero
	MinStayDuration   int `validate:"gte=0"`
	IncludeTransfers  bool
	MaxTransferLevels int

	// Optimize collapses both itinerary lists to one per departure time
	// before counting
	Optimize bool
}

func DefaultRoundTripOptions() RoundTripOptions {
	return RoundTripOptions{
		MinStayDuration:   DefaultMinStayDuration,
		IncludeTransfers:  true,
		MaxTransferLevels: 1,
	}
}

type returnSearch struct {
	Code        string
	Itineraries []ctdf.Itinerary
	Truncated   bool
}

// SearchRoundTrip finds destinations reachable on the outbound date that also
// have a train back to the origin on the return date. Returns must leave at
// least MinStayDuration after the latest outbound arrival at that destination.
func (p *Planner) SearchRoundTrip(ctx context.Context, params RoundTripParams, options RoundTripOptions) (*ctdf.RoundTripResult, error) {
	params.Origin = util.NormaliseStationCode(params.Origin)
	params.Destination = util.NormaliseStationCode(params.Destination)

	if err := validate.Struct(params); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidParams, err)
	}
	if err := validate.Struct(options); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidParams, err)
	}
	if options.MinStayDuration == 0 {
		options.MinStayDuration = DefaultMinStayDuration
	}

	searchOptions := SearchOptions{
		IncludeTransfers:  options.IncludeTransfers,
		MaxTransferLevels: options.MaxTransferLevels,
	}

	outbound, err := p.SearchJourneys(ctx, JourneyParams{
		Origin:      params.Origin,
		Destination: params.Destination,
		Date:        params.OutboundDate,
	}, searchOptions)
	if err != nil {
		return nil, err
	}

	result := &ctdf.RoundTripResult{
		Matches: map[string]*ctdf.RoundTripMatch{},
		Metadata: ctdf.RoundTripMetadata{
			OutboundDate:              params.OutboundDate,
			ReturnDate:                params.ReturnDate,
			OriginCode:                params.Origin,
			MinStayDuration:           options.MinStayDuration,
			TotalOutboundDestinations: len(outbound.Destinations),
		},
		Truncated: outbound.Truncated,
	}

	if outbound.Empty() {
		result.Metadata.EmptyReason = ctdf.RoundTripEmptyReasonNoOutbound
		return result, nil
	}

	returnPool := pool.NewWithResults[returnSearch]().WithMaxGoroutines(p.concurrency())
	for _, code := range outbound.DestinationCodes() {
		returnPool.Go(func() returnSearch {
			return p.searchReturn(ctx, code, params.Origin, params.ReturnDate, searchOptions)
		})
	}

	for _, returns := range returnPool.Wait() {
		result.Truncated = result.Truncated || returns.Truncated

		if len(returns.Itineraries) == 0 {
			continue
		}
		result.Metadata.TotalReturnOrigins++

		bucket := outbound.Get(returns.Code)
		latest, found := bucket.LatestArrival()
		if !found {
			continue
		}

		validReturns := util.Filter(returns.Itineraries, func(itinerary ctdf.Itinerary) bool {
			return util.MinutesBetween(latest.Arrival, itinerary.Departure) >= options.MinStayDuration
		})
		if len(validReturns) == 0 {
			continue
		}

		outboundItineraries := bucket.Itineraries
		if options.Optimize {
			outboundItineraries = Optimize(outboundItineraries)
			validReturns = Optimize(validReturns)
		}

		match := &ctdf.RoundTripMatch{}
		if err := copier.CopyWithOption(match, bucket, copier.Option{DeepCopy: true}); err != nil {
			return nil, err
		}
		match.OutboundItineraries = outboundItineraries
		match.ReturnItineraries = validReturns
		match.OutboundCount = len(outboundItineraries)
		match.ReturnCount = len(validReturns)
		match.TotalCombinations = match.OutboundCount * match.ReturnCount

		result.Matches[returns.Code] = match
	}

	if result.Empty() {
		result.Metadata.EmptyReason = ctdf.RoundTripEmptyReasonNoMatchingReturns
	}

	log.Debug().
		Str("origin", params.Origin).
		Int("outbound", result.Metadata.TotalOutboundDestinations).
		Int("returnOrigins", result.Metadata.TotalReturnOrigins).
		Int("matches", len(result.Matches)).
		Int("combinations", result.TotalCombinations()).
		Msg("Round trip search complete")

	return result, nil
}

// searchReturn looks for itineraries from code back to origin. A failed
// search degrades to no returns for that destination only.
func (p *Planner) searchReturn(ctx context.Context, code string, origin string, date string, options SearchOptions) returnSearch {
	returns, err := p.SearchJourneys(ctx, JourneyParams{
		Origin:      code,
		Destination: origin,
		Date:        date,
	}, options)
	if err != nil {
		log.Warn().Err(err).Str("from", code).Str("to", origin).Msg("Return search failed")
		return returnSearch{Code: code, Truncated: true}
	}

	search := returnSearch{Code: code, Truncated: returns.Truncated}
	if bucket := returns.Get(origin); bucket != nil {
		search.Itineraries = bucket.Itineraries
	}

	return search
}

// SearchRoundTripWithStations is SearchRoundTrip with destination names,
// coordinates and itinerary emissions taken from the station lookup
func (p *Planner) SearchRoundTripWithStations(ctx context.Context, params RoundTripParams, options RoundTripOptions) (*ctdf.RoundTripResult, error) {
	result, err := p.SearchRoundTrip(ctx, params, options)
	if err != nil {
		return nil, err
	}

	itineraryLists := make([][]ctdf.Itinerary, 0, 2*len(result.Matches))
	for _, match := range result.Matches {
		itineraryLists = append(itineraryLists, match.OutboundItineraries, match.ReturnItineraries)
	}

	for code, station := range p.resolveItineraries(ctx, itineraryLists...) {
		match, exists := result.Matches[code]
		if !exists {
			continue
		}
		if station.Name != "" {
			match.Name = station.Name
		}
		match.Location = station.Location
	}

	return result, nil
}
