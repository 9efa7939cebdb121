// Package services defines shared utilities consumed by the intake pipeline
// and the manifest index job.
//
// Key responsibilities:
//   - Context helpers that stamp run identifiers, dataset names, and
//     correlation identifiers for logging and tracing.
//   - Structured error markers plus the Wrap helper that keep failure
//     classification uniform across components.
//
// Use these helpers when wiring new pipeline logic so operational behaviour
// (error handling, observability) stays uniform.
package services
