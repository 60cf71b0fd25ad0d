package source

import (
	"context"
	"errors"
)

var ErrUnsupportedSource = errors.New("query is not supported by this data source")

// Context returns ctx, or a background context when the query carried none
func Context(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
