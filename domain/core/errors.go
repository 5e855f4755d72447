package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions.
//
// Every derivation function fails locally: it returns one of these
// sentinels instead of letting an internal error escape its boundary.
// The presentation layer translates them into user-facing messages; it
// is never handed a partially populated result.
var (
	// ErrMissingColumn means a column the derivation needs was absent
	// from the uploaded file. Informational, not alarming: the file
	// simply does not support that analysis.
	ErrMissingColumn = errors.New("required column missing")

	// ErrInsufficientData means the columns were present but too few
	// rows survived filtering to produce a meaningful statistic.
	ErrInsufficientData = errors.New("insufficient data after filtering")

	// ErrComputation wraps an unexpected failure inside a derivation
	// (e.g. a degenerate binning request).
	ErrComputation = errors.New("computation failed")

	// ErrParse means the uploaded file itself could not be read. No
	// partial table is ever exposed after a parse failure.
	ErrParse = errors.New("failed to parse input file")
)

// MissingColumn reports which column was absent.
func MissingColumn(column string) error {
	return fmt.Errorf("%w: %s", ErrMissingColumn, column)
}

// MissingColumns reports a set of absent columns.
func MissingColumns(columns ...string) error {
	return fmt.Errorf("%w: %v", ErrMissingColumn, columns)
}

// InsufficientData reports how many rows remained versus how many were needed.
func InsufficientData(context string, have, need int) error {
	return fmt.Errorf("%w: %s (%d rows, need %d)", ErrInsufficientData, context, have, need)
}

// Computation wraps an unexpected derivation failure.
func Computation(context string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrComputation, context, err)
}

// IsNoData reports whether err is one of the benign "no data" sentinels
// (missing column or insufficient rows) rather than a real failure.
func IsNoData(err error) bool {
	return errors.Is(err, ErrMissingColumn) || errors.Is(err, ErrInsufficientData)
}
