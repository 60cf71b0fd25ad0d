package journeyplanner

import (
	"strings"

	"github.com/travigo/tgvmax/pkg/ctdf"
	"golang.org/x/exp/slices"
)

// Optimize keeps one itinerary per departure time, sorted by departure.
// Direct trains win over connections, then the shorter journey, then
// whichever came first.
func Optimize(itineraries []ctdf.Itinerary) []ctdf.Itinerary {
	optimized := make([]ctdf.Itinerary, 0, len(itineraries))
	positions := map[string]int{}

	for _, itinerary := range itineraries {
		position, seen := positions[itinerary.Departure]
		if !seen {
			positions[itinerary.Departure] = len(optimized)
			optimized = append(optimized, itinerary)
			continue
		}

		if preferred(itinerary, optimized[position]) {
			optimized[position] = itinerary
		}
	}

	slices.SortStableFunc(optimized, func(a, b ctdf.Itinerary) int {
		return strings.Compare(a.Departure, b.Departure)
	})

	return optimized
}

func preferred(candidate ctdf.Itinerary, current ctdf.Itinerary) bool {
	if candidate.IsDirect() != current.IsDirect() {
		return candidate.IsDirect()
	}

	return candidate.Duration < current.Duration
}
