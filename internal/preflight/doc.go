// Package preflight provides readiness checks for the filesystem paths an
// intake run depends on.
//
// The intake command runs RunAll after directories are created and refuses to
// start when a check fails; writing half a run's artifacts and then dying on
// a permission error is worse than not starting.
package preflight
