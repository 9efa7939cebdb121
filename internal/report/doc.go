// Package report renders intake results for people: a markdown audit capsule
// written alongside the data, and compact terminal tables for interactive
// runs.
package report
