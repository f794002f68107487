// Package library persists the anime catalog, release records, and the owned
// collection in SQLite.
//
// The Store manages the database connection, schema initialization, and all
// reads and writes. Release ingestion is idempotent: release_id carries a
// uniqueness constraint and InsertRelease surfaces duplicate writes as
// ErrDuplicateRelease instead of failing the batch, which is what allows
// concurrent resolutions of the same anime to race safely.
//
// Schema changes bump schemaVersion in schema.go; the database is recreated
// rather than migrated in place.
package library
