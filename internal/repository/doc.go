// Package repository defines the persistence boundary of the editor.
//
// The editor state is saved as an opaque serialized document under a
// string key. Serialization lives in the codec package; this package only
// stores bytes.
//
// # Store Interface
//
// Store saves, loads, deletes and lists documents. Loading a key that was
// never saved, or that holds an empty document, returns ErrNotFound so the
// caller can fall back to a fresh editor.
//
// # SQLite Implementation
//
// The sqlite subpackage implements Store on a single documents table using
// the pure Go modernc.org/sqlite driver. It runs with WAL journaling and
// migrates its schema on open.
//
// # Testing
//
// The sqlite store is tested against in-memory databases.
package repository
