// Package analytics is the derived-metric library: a catalog of pure,
// independent transformations over the cleaned property table. Each
// function re-derives its own working subset, returns a small result
// table or a flat statistics bundle, and fails locally with the
// sentinels in domain/core rather than raising.
package analytics

import (
	"github.com/montanaflynn/stats"
)

// Descriptive helpers. Derivations collect non-missing values into a
// slice first, so an empty slice is the only failure mode; the safe
// default for every optional statistic is zero.

func mean(values []float64) float64 {
	m, err := stats.Mean(values)
	if err != nil {
		return 0
	}
	return m
}

func median(values []float64) float64 {
	m, err := stats.Median(values)
	if err != nil {
		return 0
	}
	return m
}

func minOf(values []float64) float64 {
	m, err := stats.Min(values)
	if err != nil {
		return 0
	}
	return m
}

func maxOf(values []float64) float64 {
	m, err := stats.Max(values)
	if err != nil {
		return 0
	}
	return m
}

func sum(values []float64) float64 {
	s, err := stats.Sum(values)
	if err != nil {
		return 0
	}
	return s
}
