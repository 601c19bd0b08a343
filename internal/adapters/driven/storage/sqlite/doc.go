// Package sqlite provides the SQLite-backed implementation of the
// Catalog driven port.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation
// that requires no CGO, enabling easy cross-compilation.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in
// the migrations/ directory. Each migration is a pair of .up.sql and
// .down.sql files.
//
// Documents live in one table; the tag vocabulary is a tags table plus
// a document_tags membership table. A document row write and its tag
// membership updates always happen inside one transaction, so readers
// never observe a document pointing at a missing tag or a tag pointing
// at a deleted document. Tags whose last membership is retracted are
// pruned in the same transaction.
//
// # Data Location
//
// By default, the database is stored at ~/.docvault/data/catalog.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking
// provided by SQLite in WAL mode.
package sqlite
