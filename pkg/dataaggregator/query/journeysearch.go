package query

import (
	"context"

	"github.com/travigo/tgvmax/pkg/journeyplanner"
)

type JourneySearch struct {
	Context context.Context

	Params  journeyplanner.JourneyParams
	Options journeyplanner.SearchOptions

	// WithStations resolves destination names and coordinates
	WithStations bool
}

type RoundTripSearch struct {
	Context context.Context

	Params  journeyplanner.RoundTripParams
	Options journeyplanner.RoundTripOptions

	WithStations bool
}
