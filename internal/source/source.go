package source

import (
	"context"
	"fmt"

	"strata/internal/merge"
)

// Source produces one nested mapping per load. Sources are constructed fresh
// for every load and hold no state between loads.
type Source interface {
	// Name identifies the source in logs and errors.
	Name() string
	// Load reads the input and returns its mapping. Missing optional inputs
	// return an empty map, not an error.
	Load(ctx context.Context) (merge.Map, error)
}

// ParseError reports a configuration file that could not be parsed, including
// after lenient recovery was attempted.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse config file %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
