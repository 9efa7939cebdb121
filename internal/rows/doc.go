// Package rows defines the normalized row table consumed by the profiling
// pipeline, plus the CSV reader that produces it.
//
// A Table preserves field declaration order and treats empty text as missing.
// All downstream coercion of text to typed values happens in the inference
// and profile packages; this package stays purely textual.
package rows
