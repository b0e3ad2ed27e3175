// Package store persists compiled ad pod records in SQLite.
//
// A pod record keeps its full configuration as JSON so the DCP package can
// be re-emitted on demand without re-uploading CPLs. Records are immutable
// once saved; the only mutations are insertion and deletion. Schema changes
// bump the version in schema.go; users clear the database to adopt the new
// schema.
package store
