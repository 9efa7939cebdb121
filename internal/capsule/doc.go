// Package capsule models result capsules and merges capsules scanned from
// multiple repositories into a single index.
//
// A capsule must carry capsule_id, timestamp_utc, status, and hash to be
// admitted. When the same id appears more than once, one record wins whole:
// green status beats non-green, then the earlier timestamp beats the later
// one, and a kept winner absorbs the loser's tags. The merge is a fold over
// the scan order, so reordering inputs can reorder accumulated tags.
package capsule
