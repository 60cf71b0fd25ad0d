package ctdf

type RoundTripEmptyReason string

const (
	RoundTripEmptyReasonNoOutbound        RoundTripEmptyReason = "no_outbound"
	RoundTripEmptyReasonNoMatchingReturns RoundTripEmptyReason = "no_matching_returns"
)

// RoundTripMatch is a destination reachable on the outbound date with at
// least one return satisfying the minimum stay
type RoundTripMatch struct {
	Code     string    `groups:"basic"`
	Name     string    `groups:"basic"`
	Location *Location `groups:"basic" json:",omitempty"`

	OutboundItineraries []Itinerary `groups:"basic"`
	ReturnItineraries   []Itinerary `groups:"basic"`

	OutboundCount     int `groups:"basic"`
	ReturnCount       int `groups:"basic"`
	TotalCombinations int `groups:"basic"`
}

type RoundTripMetadata struct {
	OutboundDate    string `groups:"basic"`
	ReturnDate      string `groups:"basic"`
	OriginCode      string `groups:"basic"`
	MinStayDuration int    `groups:"basic"`

	TotalOutboundDestinations int `groups:"basic"`
	TotalReturnOrigins        int `groups:"basic"`

	EmptyReason RoundTripEmptyReason `groups:"basic" json:",omitempty"`
}

type RoundTripResult struct {
	Matches  map[string]*RoundTripMatch `groups:"basic"`
	Metadata RoundTripMetadata          `groups:"basic"`

	Truncated bool `groups:"basic"`
}

func (r *RoundTripResult) Empty() bool {
	return len(r.Matches) == 0
}

func (r *RoundTripResult) TotalCombinations() int {
	total := 0
	for _, match := range r.Matches {
		total += match.TotalCombinations
	}
	return total
}
