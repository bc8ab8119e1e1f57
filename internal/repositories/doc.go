// Package repositories implements SQLite persistence for scan history.
//
// Each repository handles CRUD operations with atomic sequence generation for human-readable ordering.
// Repositories support soft deletes via deleted_at timestamps and exclude deleted records from queries by default.
//
// Key Implementations:
//   - [ScanRepository] : Completed scan runs with their flagged results
//
// Sequence numbers provide stable, human-readable ordering (e.g., scan #42)
// independent of UUIDs and creation timestamps. The [NextSequence] function
// atomically increments per-table sequence counters in dedicated sequence tables.
//
// Flagged results are stored with an explicit position column so that the
// scanner's discovery order (competition, then fixture, then home before
// away) is preserved exactly when a scan is listed or exported later.
package repositories
