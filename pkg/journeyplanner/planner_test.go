package journeyplanner

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/travigo/tgvmax/pkg/config"
	"github.com/travigo/tgvmax/pkg/ctdf"
	"github.com/travigo/tgvmax/pkg/tgvmax"
)

const testDate = "2024-06-01"

var errFetchFailed = errors.New("records api unavailable")

// fakeRecords answers queries from an in-memory schedule
type fakeRecords struct {
	mutex sync.Mutex

	records []ctdf.ScheduleRecord
	failing map[string]bool
	calls   []tgvmax.Query
}

func newFakeRecords(records ...ctdf.ScheduleRecord) *fakeRecords {
	return &fakeRecords{
		records: records,
		failing: map[string]bool{},
	}
}

func (f *fakeRecords) FetchAllRecords(ctx context.Context, q tgvmax.Query) tgvmax.FetchResult {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	f.calls = append(f.calls, q)

	if f.failing[q.Origin] {
		return tgvmax.FetchResult{Pages: 1, Truncated: true, Err: errFetchFailed}
	}

	result := tgvmax.FetchResult{Pages: 1}
	for _, record := range f.records {
		if record.OriginCode != q.Origin || record.Date != q.Date {
			continue
		}
		if q.Destination != "" && record.DestinationCode != q.Destination {
			continue
		}
		result.Records = append(result.Records, record)
	}

	return result
}

func (f *fakeRecords) Calls() []tgvmax.Query {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	return append([]tgvmax.Query{}, f.calls...)
}

// slowRecords delays every fetch and remembers the most fetches it saw at once
type slowRecords struct {
	RecordSource

	inFlight    atomic.Int32
	maxInFlight atomic.Int32
}

func (s *slowRecords) FetchAllRecords(ctx context.Context, q tgvmax.Query) tgvmax.FetchResult {
	current := s.inFlight.Add(1)
	defer s.inFlight.Add(-1)

	for {
		seen := s.maxInFlight.Load()
		if current <= seen || s.maxInFlight.CompareAndSwap(seen, current) {
			break
		}
	}

	time.Sleep(5 * time.Millisecond)
	return s.RecordSource.FetchAllRecords(ctx, q)
}

type fakeStations map[string]ctdf.Station

func (f fakeStations) GetStationByCode(ctx context.Context, code string) (*ctdf.Station, error) {
	if code == "BROKEN" {
		return nil, errors.New("lookup failed")
	}

	station, exists := f[code]
	if !exists {
		return nil, nil
	}
	return &station, nil
}

func legOn(date string, origin string, destination string, departure string, arrival string) ctdf.ScheduleRecord {
	return ctdf.ScheduleRecord{
		Date:            date,
		OriginCode:      origin,
		OriginName:      fmt.Sprintf("Station %s", origin),
		DestinationCode: destination,
		DestinationName: fmt.Sprintf("Station %s", destination),
		DepartureTime:   departure,
		ArrivalTime:     arrival,
		TrainNumber:     fmt.Sprintf("%s%s%s", origin, destination, departure),
		Entity:          "SNCF",
		Axis:            "SUD EST",
	}
}

func leg(origin string, destination string, departure string, arrival string) ctdf.ScheduleRecord {
	return legOn(testDate, origin, destination, departure, arrival)
}

func newTestPlanner(records RecordSource) *Planner {
	return &Planner{
		Records:               records,
		Transfer:              config.Default().Transfer,
		MaxConcurrentRequests: 4,
	}
}
