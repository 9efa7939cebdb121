// Package profile computes per-column statistical summaries over a row table
// given the inferred column types.
//
// Numeric columns get population statistics (denominator n), order statistics
// from a full sort, IQR-based outlier counts, and third-moment skewness.
// Non-numeric columns get cardinality and a top-value frequency list. The
// profiler never fails on bad data: unparseable numeric values are excluded
// and counted as invalid, surfaced later by the validator.
package profile
