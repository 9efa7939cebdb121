// Package validate evaluates a statistical profile against configured quality
// thresholds and produces a graded verdict.
//
// The check sequence is fixed and its ordering observable: sample size and
// completeness are required checks that can fail the verdict; the outlier
// ratio and domain-range checks only ever add warnings. A validation run
// always completes and returns a verdict regardless of how bad the data is.
package validate
