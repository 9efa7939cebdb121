// Package intake orchestrates a profiling run over one CSV file: hash the
// file, read rows, infer column types, build the statistical profile, and
// validate it against the configured thresholds. Bad data produces a failing
// verdict, never an error; errors mean the input could not be read at all.
package intake
