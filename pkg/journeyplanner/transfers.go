package journeyplanner

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
	"github.com/travigo/tgvmax/pkg/ctdf"
	"github.com/travigo/tgvmax/pkg/tgvmax"
	"github.com/travigo/tgvmax/pkg/util"
)

// TransferLevelResult is what one level of transfer search discovered.
// NextFrontier holds the accepted paths that have not yet reached the final
// destination.
type TransferLevelResult struct {
	Itineraries  []ctdf.Itinerary
	NextFrontier []ctdf.Trip
	Truncated    bool
}

type TransferSearchResult struct {
	Itineraries []ctdf.Itinerary
	Levels      int
	Truncated   bool
}

type hubRecords struct {
	Hub    string
	Result tgvmax.FetchResult
}

// SearchTransfers extends the seed trips one connection per level, up to
// maxLevel connections, collecting every itinerary that reaches
// finalDestination (or anywhere when it is empty).
func (p *Planner) SearchTransfers(ctx context.Context, origin string, finalDestination string, date string, seed []ctdf.Trip, maxLevel int) TransferSearchResult {
	result := TransferSearchResult{}
	frontier := util.Filter(seed, func(trip ctdf.Trip) bool {
		return finalDestination == "" || trip.EndpointCode() != finalDestination
	})

	for level := 1; level <= maxLevel && len(frontier) > 0; level++ {
		levelResult := p.searchTransferLevel(ctx, frontier, finalDestination, date, level, level == maxLevel)

		result.Itineraries = append(result.Itineraries, levelResult.Itineraries...)
		result.Truncated = result.Truncated || levelResult.Truncated
		result.Levels = level

		log.Debug().
			Str("origin", origin).
			Int("level", level).
			Int("frontier", len(frontier)).
			Int("itineraries", len(levelResult.Itineraries)).
			Msg("Transfer level searched")

		frontier = levelResult.NextFrontier
	}

	return result
}

// searchTransferLevel extends every frontier trip by one connection. Onward
// trains are only filtered by finalDestination on the last level, earlier
// levels need every departure from a hub to reach the next one. A path never
// passes through the same station twice and stops growing once it reaches
// finalDestination.
func (p *Planner) searchTransferLevel(ctx context.Context, frontier []ctdf.Trip, finalDestination string, date string, level int, lastLevel bool) TransferLevelResult {
	levelResult := TransferLevelResult{}

	onwardDestination := ""
	if lastLevel {
		onwardDestination = finalDestination
	}

	hubs := make([]string, 0, len(frontier))
	for _, trip := range frontier {
		hubs = append(hubs, trip.EndpointCode())
	}
	hubs = util.RemoveDuplicateStrings(hubs, nil)

	fetchPool := pool.NewWithResults[hubRecords]().WithMaxGoroutines(p.concurrency())
	for _, hub := range hubs {
		fetchPool.Go(func() hubRecords {
			return hubRecords{
				Hub: hub,
				Result: p.fetch(ctx, tgvmax.Query{
					Origin:      hub,
					Date:        date,
					Destination: onwardDestination,
				}),
			}
		})
	}

	onwardByHub := map[string][]ctdf.ScheduleRecord{}
	for _, fetched := range fetchPool.Wait() {
		if fetched.Result.Err != nil {
			log.Warn().Err(fetched.Result.Err).Str("hub", fetched.Hub).Int("level", level).Msg("Onward search from hub failed")
			levelResult.Truncated = true
		}
		onwardByHub[fetched.Hub] = fetched.Result.Records
	}

	for _, trip := range frontier {
		endpoint := trip.EndpointCode()

		for _, next := range onwardByHub[endpoint] {
			if next.OriginCode != endpoint || trip.Visits(next.DestinationCode) {
				continue
			}

			if !p.acceptConnection(trip, next) {
				continue
			}

			extended := trip.Extend(next)
			reached := finalDestination != "" && next.DestinationCode == finalDestination

			if finalDestination == "" || reached {
				levelResult.Itineraries = append(levelResult.Itineraries, ctdf.NewItinerary(extended, level))
			}
			if !reached {
				levelResult.NextFrontier = append(levelResult.NextFrontier, extended)
			}
		}
	}

	return levelResult
}

// acceptConnection decides whether next can follow trip. The wait at the hub
// must lie within the transfer window and, when enforced, the whole journey
// must fit within the total duration cap.
func (p *Planner) acceptConnection(trip ctdf.Trip, next ctdf.ScheduleRecord) bool {
	wait := util.MinutesBetween(trip.LastArrival(), next.DepartureTime)
	if wait < p.Transfer.MinWait || wait > p.Transfer.MaxWait {
		return false
	}

	if p.Transfer.EnforceTotalDuration {
		total := util.MinutesBetween(trip.FirstDeparture(), next.ArrivalTime)
		if total > p.Transfer.MaxTotalMinutes() {
			return false
		}
	}

	return true
}
