package ctdf

import (
	"golang.org/x/exp/slices"
)

// DestinationBucket groups every itinerary reaching the same destination
type DestinationBucket struct {
	Code     string    `groups:"basic"`
	Name     string    `groups:"basic"`
	Location *Location `groups:"basic" json:",omitempty"`

	Itineraries []Itinerary `groups:"basic"`
}

func (b *DestinationBucket) Add(itinerary Itinerary) {
	b.Itineraries = append(b.Itineraries, itinerary)
}

// LatestArrival returns the itinerary arriving last. HH:MM strings on the same
// day compare correctly as strings.
func (b *DestinationBucket) LatestArrival() (Itinerary, bool) {
	if b == nil || len(b.Itineraries) == 0 {
		return Itinerary{}, false
	}

	latest := b.Itineraries[0]
	for _, itinerary := range b.Itineraries[1:] {
		if itinerary.Arrival > latest.Arrival {
			latest = itinerary
		}
	}

	return latest, true
}

func (b *DestinationBucket) Counts() (direct int, transfer int) {
	for _, itinerary := range b.Itineraries {
		if itinerary.IsDirect() {
			direct++
		} else {
			transfer++
		}
	}
	return direct, transfer
}

type JourneySearchMetadata struct {
	SearchDate      string `groups:"basic"`
	OriginCode      string `groups:"basic"`
	DestinationCode string `groups:"basic" json:",omitempty"`
	MaxLevels       int    `groups:"basic"`
}

// JourneySearchResult is the output of one journey search, keyed by
// destination code
type JourneySearchResult struct {
	Destinations map[string]*DestinationBucket `groups:"basic"`
	Metadata     JourneySearchMetadata         `groups:"basic"`

	// Truncated is set when at least one fetch behind this result failed, so
	// the result may be missing itineraries
	Truncated bool `groups:"basic"`
}

func NewJourneySearchResult(metadata JourneySearchMetadata) *JourneySearchResult {
	return &JourneySearchResult{
		Destinations: map[string]*DestinationBucket{},
		Metadata:     metadata,
	}
}

// Bucket returns the bucket for code, creating it on first use
func (r *JourneySearchResult) Bucket(code string, name string) *DestinationBucket {
	bucket, exists := r.Destinations[code]
	if !exists {
		bucket = &DestinationBucket{
			Code: code,
			Name: name,
		}
		r.Destinations[code] = bucket
	}

	return bucket
}

func (r *JourneySearchResult) Add(itinerary Itinerary) {
	r.Bucket(itinerary.DestinationCode(), itinerary.DestinationName()).Add(itinerary)
}

func (r *JourneySearchResult) Get(code string) *DestinationBucket {
	return r.Destinations[code]
}

func (r *JourneySearchResult) Empty() bool {
	return len(r.Destinations) == 0
}

// DestinationCodes returns every destination code in sorted order
func (r *JourneySearchResult) DestinationCodes() []string {
	codes := make([]string, 0, len(r.Destinations))
	for code := range r.Destinations {
		codes = append(codes, code)
	}
	slices.Sort(codes)

	return codes
}

func (r *JourneySearchResult) Counts() (direct int, transfer int) {
	for _, bucket := range r.Destinations {
		d, t := bucket.Counts()
		direct += d
		transfer += t
	}
	return direct, transfer
}
