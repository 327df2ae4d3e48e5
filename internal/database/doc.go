// Package database provides SQLite-based persistence for crawl run history.
//
// Design decision: We use modernc.org/sqlite (a pure-Go SQLite port)
// because:
//  1. No cgo dependency, simplifying cross-compilation
//  2. A single-file database fits a single-binary tool
//  3. SQL queries make run history inspection trivial
//
// Storage is best-effort from the caller's point of view: a failure to save
// history never fails the crawl itself.
package database
