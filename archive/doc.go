// Package archive persists finished games for later inspection.
//
// A Record captures everything a completed game leaves behind: the outcome,
// the final role reveal and the full public event log. The Store interface
// keeps persistence pluggable; InMemoryStore covers tests and
// single-process runs, while the sqlite subpackage provides a durable
// implementation.
package archive
