package tgvmax

import (
	"reflect"

	"github.com/travigo/tgvmax/pkg/ctdf"
	"github.com/travigo/tgvmax/pkg/dataaggregator/query"
	"github.com/travigo/tgvmax/pkg/dataaggregator/source"
	"github.com/travigo/tgvmax/pkg/tgvmax"
	"github.com/travigo/tgvmax/pkg/util"
)

type Source struct {
	Client *tgvmax.Client
}

func (s Source) GetName() string {
	return "TGVmax records API"
}

func (s Source) Supports() []reflect.Type {
	return []reflect.Type{
		reflect.TypeOf([]ctdf.ScheduleRecord{}),
	}
}

func (s Source) Lookup(q any) (interface{}, error) {
	switch q := q.(type) {
	case query.ScheduleRecords:
		recordsQuery := tgvmax.Query{
			Origin:      util.NormaliseStationCode(q.Origin),
			Date:        q.Date,
			Destination: util.NormaliseStationCode(q.Destination),
		}

		if q.Page > 0 {
			page, err := s.Client.FetchPage(source.Context(q.Context), recordsQuery, (q.Page-1)*s.Client.PageSize)
			return page.Records, err
		}

		result := s.Client.FetchAllRecords(source.Context(q.Context), recordsQuery)

		// Partial records are still returned alongside the error
		return result.Records, result.Err
	default:
		return nil, source.ErrUnsupportedSource
	}
}
