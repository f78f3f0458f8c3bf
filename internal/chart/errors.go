package chart

import (
	"errors"
	"fmt"
)

var (
	// ErrDegenerateRange is returned by the mapper when a data range has zero width.
	ErrDegenerateRange = errors.New("chart: degenerate range")
	// ErrNoData is returned by range queries on an axis without series.
	ErrNoData = errors.New("chart: no data for axis")
)

// SchemaError reports a malformed or inconsistent load document.
type SchemaError struct {
	Field  string
	Reason string
}

func (e *SchemaError) Error() string {
	if e.Field == "" {
		return "chart: schema: " + e.Reason
	}
	return fmt.Sprintf("chart: schema: %s: %s", e.Field, e.Reason)
}

func schemaErrorf(field, format string, args ...any) error {
	return &SchemaError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
