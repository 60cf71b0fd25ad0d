package journeyplanner

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
	"github.com/travigo/tgvmax/pkg/ctdf"
	"github.com/travigo/tgvmax/pkg/emissions"
	"github.com/travigo/tgvmax/pkg/util"
)

type stationLookupResult struct {
	Code    string
	Station *ctdf.Station
}

// lookupStations resolves codes in parallel. Misses and failures are left out
// of the returned map.
func (p *Planner) lookupStations(ctx context.Context, codes []string) map[string]*ctdf.Station {
	stations := map[string]*ctdf.Station{}
	if p.Stations == nil || len(codes) == 0 {
		return stations
	}

	lookupPool := pool.NewWithResults[stationLookupResult]().WithMaxGoroutines(p.concurrency())
	for _, code := range codes {
		lookupPool.Go(func() stationLookupResult {
			station, err := p.Stations.GetStationByCode(ctx, code)
			if err != nil {
				log.Warn().Err(err).Str("code", code).Msg("Station lookup failed")
				return stationLookupResult{Code: code}
			}
			return stationLookupResult{Code: code, Station: station}
		})
	}

	for _, lookup := range lookupPool.Wait() {
		if lookup.Station != nil {
			stations[lookup.Code] = lookup.Station
		}
	}

	log.Debug().Int("requested", len(codes)).Int("found", len(stations)).Msg("Resolved stations")

	return stations
}

// resolveItineraries looks up every station the itineraries pass through and
// attaches each itinerary's carbon footprint. The resolved stations are
// returned for further use.
func (p *Planner) resolveItineraries(ctx context.Context, itineraryLists ...[]ctdf.Itinerary) map[string]*ctdf.Station {
	var codes []string
	for _, itineraries := range itineraryLists {
		for _, itinerary := range itineraries {
			for _, leg := range itinerary.Legs {
				codes = append(codes, leg.OriginCode, leg.DestinationCode)
			}
		}
	}

	stations := p.lookupStations(ctx, util.RemoveDuplicateStrings(codes, nil))
	if p.Stations == nil {
		return stations
	}

	locations := map[string]*ctdf.Location{}
	for code, station := range stations {
		locations[code] = station.Location
	}

	for _, itineraries := range itineraryLists {
		for index := range itineraries {
			itineraries[index].Emissions = emissions.Calculate(itineraries[index].Legs, locations)
		}
	}

	return stations
}

// SearchJourneysWithStations is SearchJourneys with destination names,
// coordinates and itinerary emissions taken from the station lookup
func (p *Planner) SearchJourneysWithStations(ctx context.Context, params JourneyParams, options SearchOptions) (*ctdf.JourneySearchResult, error) {
	result, err := p.SearchJourneys(ctx, params, options)
	if err != nil {
		return nil, err
	}

	itineraryLists := make([][]ctdf.Itinerary, 0, len(result.Destinations))
	for _, bucket := range result.Destinations {
		itineraryLists = append(itineraryLists, bucket.Itineraries)
	}

	stations := p.resolveItineraries(ctx, itineraryLists...)
	for code, station := range stations {
		bucket := result.Get(code)
		if bucket == nil {
			continue
		}

		if station.Name != "" {
			bucket.Name = station.Name
		}
		bucket.Location = station.Location
	}

	return result, nil
}
