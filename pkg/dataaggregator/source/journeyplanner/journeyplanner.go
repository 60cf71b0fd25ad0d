package journeyplanner

import (
	"reflect"

	"github.com/travigo/tgvmax/pkg/ctdf"
	"github.com/travigo/tgvmax/pkg/dataaggregator/query"
	"github.com/travigo/tgvmax/pkg/dataaggregator/source"
	"github.com/travigo/tgvmax/pkg/journeyplanner"
)

type Source struct {
	Planner *journeyplanner.Planner
}

func (s Source) GetName() string {
	return "Journey Planner"
}

func (s Source) Supports() []reflect.Type {
	return []reflect.Type{
		reflect.TypeOf(ctdf.JourneySearchResult{}),
		reflect.TypeOf(ctdf.RoundTripResult{}),
	}
}

func (s Source) Lookup(q any) (interface{}, error) {
	switch q := q.(type) {
	case query.JourneySearch:
		return s.JourneySearchQuery(q)
	case query.RoundTripSearch:
		return s.RoundTripSearchQuery(q)
	default:
		return nil, source.ErrUnsupportedSource
	}
}

func (s Source) JourneySearchQuery(q query.JourneySearch) (*ctdf.JourneySearchResult, error) {
	var result *ctdf.JourneySearchResult
	var err error

	if q.WithStations {
		result, err = s.Planner.SearchJourneysWithStations(source.Context(q.Context), q.Params, q.Options)
	} else {
		result, err = s.Planner.SearchJourneys(source.Context(q.Context), q.Params, q.Options)
	}

	if result == nil {
		return nil, err
	}
	return result, err
}

func (s Source) RoundTripSearchQuery(q query.RoundTripSearch) (*ctdf.RoundTripResult, error) {
	var result *ctdf.RoundTripResult
	var err error

	if q.WithStations {
		result, err = s.Planner.SearchRoundTripWithStations(source.Context(q.Context), q.Params, q.Options)
	} else {
		result, err = s.Planner.SearchRoundTrip(source.Context(q.Context), q.Params, q.Options)
	}

	if result == nil {
		return nil, err
	}
	return result, err
}
