// Package store adapts persistent key/value configuration to the views core.
//
// The core only needs three operations (GetIntList, SetIntList, GetString);
// backends add string writes and lifecycle on top:
//
//   - FileStore: one TOML or YAML document, re-read on every access and
//     replaced atomically on every write
//   - SQLiteStore: a single entries table with JSON-encoded values
//   - MemoryStore: process memory, with injectable failures for tests
//
// Absent keys report ErrNotFound. Values of the wrong shape, and documents
// that cannot be parsed, report ErrMalformed. Callers tell them apart with
// errors.Is.
package store
