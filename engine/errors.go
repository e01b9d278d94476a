package engine

import "errors"

var (
	// ErrUnknownColumn is returned when a referenced column is missing from a row or result
	ErrUnknownColumn = errors.New("unknown column")

	// ErrNotNumeric is returned when an aggregation or plot needs a number and gets something else
	ErrNotNumeric = errors.New("value is not numeric")

	// ErrNotGrouped is returned when a bare column is selected alongside aggregation
	// without being the group key
	ErrNotGrouped = errors.New("column must be the GROUPBY key or be aggregated")

	// ErrNoPlot is returned by BuildPlot for queries without a PLOT clause
	ErrNoPlot = errors.New("query has no PLOT clause")
)
