// Package runstore persists intake run history in SQLite: one row per run
// with its verdict, quality score, and the full profile as JSON. The schema
// is versioned and never migrated in place.
package runstore
