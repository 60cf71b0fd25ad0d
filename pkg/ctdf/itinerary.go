package ctdf

import (
	"github.com/travigo/tgvmax/pkg/util"
)

// Itinerary is a complete traveller journey made of one or more legs. It is
// built once from a Trip and not modified afterwards.
type Itinerary struct {
	Type  TripKind `groups:"basic"`
	Stops int      `groups:"basic"`

	Departure string `groups:"basic"`
	Arrival   string `groups:"basic"`

	// Duration in minutes across the whole span, midnight aware
	Duration int `groups:"basic"`

	Legs []ScheduleRecord `groups:"detailed"`

	// Emissions is only filled in when stations are resolved
	Emissions *Emissions `groups:"basic" json:",omitempty"`
}

func NewItinerary(trip Trip, stops int) Itinerary {
	legs := trip.Legs()

	itinerary := Itinerary{
		Type:      trip.Kind(),
		Stops:     stops,
		Departure: trip.FirstDeparture(),
		Arrival:   trip.LastArrival(),
		Legs:      legs,
	}
	itinerary.Duration = util.MinutesBetween(itinerary.Departure, itinerary.Arrival)

	return itinerary
}

func (i Itinerary) IsDirect() bool {
	return i.Type == TripKindDirect
}

func (i Itinerary) DestinationCode() string {
	if len(i.Legs) == 0 {
		return ""
	}
	return i.Legs[len(i.Legs)-1].DestinationCode
}

func (i Itinerary) DestinationName() string {
	if len(i.Legs) == 0 {
		return ""
	}
	return i.Legs[len(i.Legs)-1].DestinationName
}

// TransferStations lists the hubs where the traveller changes train, in order
func (i Itinerary) TransferStations() []string {
	var stations []string
	for index := 0; index < len(i.Legs)-1; index++ {
		stations = append(stations, i.Legs[index].DestinationName)
	}
	return stations
}

// WaitTimes lists the connection times in minutes between consecutive legs
func (i Itinerary) WaitTimes() []int {
	var waits []int
	for index := 0; index < len(i.Legs)-1; index++ {
		waits = append(waits, util.MinutesBetween(i.Legs[index].ArrivalTime, i.Legs[index+1].DepartureTime))
	}
	return waits
}

func (i Itinerary) FormattedDuration() string {
	return util.FormatDuration(i.Duration)
}
