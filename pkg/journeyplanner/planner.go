package journeyplanner

import (
	"context"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/travigo/tgvmax/pkg/config"
	"github.com/travigo/tgvmax/pkg/ctdf"
	"github.com/travigo/tgvmax/pkg/tgvmax"
	"golang.org/x/sync/semaphore"
)

// RecordSource supplies every schedule record matching a query
type RecordSource interface {
	FetchAllRecords(ctx context.Context, q tgvmax.Query) tgvmax.FetchResult
}

// StationLookup resolves station codes. Unknown codes give nil, nil.
type StationLookup interface {
	GetStationByCode(ctx context.Context, code string) (*ctdf.Station, error)
}

type Planner struct {
	Records  RecordSource
	Stations StationLookup

	Transfer config.TransferConfig

	// MaxConcurrentRequests bounds the record fetches in flight across all of
	// the planner's fan-outs, nested ones included, and the width of each
	// station lookup pool
	MaxConcurrentRequests int

	slotsOnce sync.Once
	slots     *semaphore.Weighted
}

var validate = validator.New()

func NewPlanner(records RecordSource, stations StationLookup, cfg *config.Config) *Planner {
	return &Planner{
		Records:               records,
		Stations:              stations,
		Transfer:              cfg.Transfer,
		MaxConcurrentRequests: cfg.Records.MaxConcurrentRequests,
	}
}

func (p *Planner) concurrency() int {
	if p.MaxConcurrentRequests <= 0 {
		return 1
	}
	return p.MaxConcurrentRequests
}

// fetch runs one record fetch once a request slot is free. Slots are only held
// for the fetch itself, so pools waiting on nested pools never hold one.
func (p *Planner) fetch(ctx context.Context, q tgvmax.Query) tgvmax.FetchResult {
	p.slotsOnce.Do(func() {
		p.slots = semaphore.NewWeighted(int64(p.concurrency()))
	})

	if err := p.slots.Acquire(ctx, 1); err != nil {
		return tgvmax.FetchResult{Truncated: true, Err: err}
	}
	defer p.slots.Release(1)

	return p.Records.FetchAllRecords(ctx, q)
}
