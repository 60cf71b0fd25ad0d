package ctdf

// Emissions is the carbon footprint of one itinerary per passenger. Legs whose
// stations have no known coordinates are left out of the totals and flagged
// through HasErrors.
type Emissions struct {
	Segments []EmissionSegment `groups:"detailed"`

	TotalDistanceKm float64 `groups:"basic"`
	TotalCO2Kg      float64 `groups:"basic"`
	HasErrors       bool    `groups:"basic"`

	Comparisons EmissionComparisons `groups:"basic"`
}

type EmissionSegment struct {
	OriginCode      string `groups:"detailed"`
	DestinationCode string `groups:"detailed"`

	TrainType   TrainType `groups:"detailed"`
	TrainNumber string    `groups:"detailed"`

	DistanceKm float64 `groups:"detailed"`
	// Factor in grams of CO2 per passenger kilometre
	Factor float64 `groups:"detailed"`
	CO2Kg  float64 `groups:"detailed"`
}

// EmissionComparisons puts the train footprint next to the same distance
// travelled by other modes
type EmissionComparisons struct {
	Car   EmissionComparison `groups:"basic"`
	Plane EmissionComparison `groups:"basic"`
	Bus   EmissionComparison `groups:"basic"`
}

type EmissionComparison struct {
	CO2Kg float64 `groups:"basic"`
	// Saved is how much less the train emits, negative when it emits more
	Saved      float64 `groups:"basic"`
	Percentage int     `groups:"basic"`
}
