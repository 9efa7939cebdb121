// Package inference classifies raw text columns into one of eight kinds
// (numeric, integer, boolean, datetime, categorical, categorical_high, mixed,
// empty) with a confidence score.
//
// Classification samples at most the first 100 non-empty values per column
// and applies a fixed decision ladder; the first matching rule wins. The
// engine is pure: it only returns descriptors and advisory warnings.
package inference
