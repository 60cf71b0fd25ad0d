package query

import "context"

type Station struct {
	Context context.Context

	Code string
}

type StationSuggestions struct {
	Context context.Context

	Query string
}

type StationDatasetStatus struct{}
