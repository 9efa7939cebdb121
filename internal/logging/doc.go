// Package logging centralizes slog handler construction and the structured
// field vocabulary used across the intake pipeline and index job.
//
// Two handler formats are supported: a console handler that renders one
// human-readable line per record with a component prefix, and a JSON handler
// for machine consumption. Context helpers stamp run, dataset, and
// correlation identifiers onto loggers so every component logs with the same
// keys.
package logging
