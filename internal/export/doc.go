// Package export runs a WordPress export: connect, probe, fetch, merge, write, close.
//
// The Exporter is a small state machine. Every run ends in Closed or Failed,
// and the database handle is released on every path. Rows from all datasets
// are merged into a Table whose header is the union of their columns in
// first-seen order. The CSV file only replaces its target once it has been
// fully written.
package export
