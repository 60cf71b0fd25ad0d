package dataaggregator

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/rs/zerolog/log"
	"github.com/travigo/tgvmax/pkg/dataaggregator/source"
)

var ErrNoMatchingSource = errors.New("failed to find a matching data source for type")

type Aggregator struct {
	Sources []DataSource
}

func New() *Aggregator {
	return &Aggregator{}
}

func (a *Aggregator) RegisterSource(source DataSource) {
	a.Sources = append(a.Sources, source)

	log.Debug().Str("name", source.GetName()).Msg("Registering new Data Source")
}

// Lookup asks every source supporting T in registration order, moving on
// when a source reports the query as unsupported.
func Lookup[T any](a *Aggregator, query any) (T, error) {
	var empty T

	lookupType := reflect.TypeOf(*new(T))
	if lookupType.Kind() == reflect.Pointer {
		lookupType = lookupType.Elem()
	}

	for _, dataSource := range a.Sources {
		matches := false

		for _, supportedType := range dataSource.Supports() {
			if lookupType == supportedType {
				matches = true
				break
			}
		}

		if !matches {
			continue
		}

		returnValue, returnError := dataSource.Lookup(query)
		if errors.Is(returnError, source.ErrUnsupportedSource) {
			continue
		}

		if returnValue == nil {
			return empty, returnError
		}

		typed, ok := returnValue.(T)
		if !ok {
			return empty, fmt.Errorf("data source %s returned %T", dataSource.GetName(), returnValue)
		}

		return typed, returnError
	}

	return empty, ErrNoMatchingSource
}
