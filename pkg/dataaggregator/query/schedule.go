package query

import "context"

type ScheduleRecords struct {
	Context context.Context

	Origin      string
	Destination string
	Date        string

	// Page only returns that page of results, counting from 1. Zero follows
	// pagination to the end.
	Page int
}
