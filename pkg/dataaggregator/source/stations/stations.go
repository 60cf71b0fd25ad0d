package stations

import (
	"reflect"

	"github.com/travigo/tgvmax/pkg/ctdf"
	"github.com/travigo/tgvmax/pkg/dataaggregator/query"
	"github.com/travigo/tgvmax/pkg/dataaggregator/source"
	"github.com/travigo/tgvmax/pkg/stations"
)

type Source struct {
	Service *stations.Service
}

func (s Source) GetName() string {
	return "Stations dataset"
}

func (s Source) Supports() []reflect.Type {
	return []reflect.Type{
		reflect.TypeOf(ctdf.Station{}),
		reflect.TypeOf([]ctdf.Station{}),
		reflect.TypeOf(stations.Status{}),
	}
}

func (s Source) Lookup(q any) (interface{}, error) {
	switch q := q.(type) {
	case query.Station:
		station, err := s.Service.GetStationByCode(source.Context(q.Context), q.Code)
		if station == nil {
			return nil, err
		}
		return station, err
	case query.StationSuggestions:
		return s.Service.Suggestions(source.Context(q.Context), q.Query)
	case query.StationDatasetStatus:
		return s.Service.Status(), nil
	default:
		return nil, source.ErrUnsupportedSource
	}
}
