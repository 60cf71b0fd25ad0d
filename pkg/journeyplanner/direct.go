package journeyplanner

import (
	"context"

	"github.com/travigo/tgvmax/pkg/ctdf"
	"github.com/travigo/tgvmax/pkg/tgvmax"
)

// SearchDirect returns every non-stop train from origin on date, optionally
// only those running to destination
func (p *Planner) SearchDirect(ctx context.Context, origin string, date string, destination string) tgvmax.FetchResult {
	return p.fetch(ctx, tgvmax.Query{
		Origin:      origin,
		Date:        date,
		Destination: destination,
	})
}

func bucketDirect(result *ctdf.JourneySearchResult, records []ctdf.ScheduleRecord) {
	for _, record := range records {
		result.Add(ctdf.NewItinerary(ctdf.NewDirectLeg(record), 0))
	}
}
