// Package service coordinates the editor model with persistence and the
// event stream.
//
// # Services
//
// EditorService owns the single editor model of a server. Dispatch applies
// one action through the editor update function under a mutex, records
// metrics, and publishes the resulting state. It also exposes save, load and
// the YAML/JSON import and export paths used by the HTTP handlers and CLI.
//
// # Persistence
//
// The model is saved as a versioned JSON document in a repository.Store
// under a configured key. Only finalized connections are persisted; a
// dangling drag is dropped. With autosave enabled, the service saves after
// any settling action (a release, a key press or a menu choice) that left
// the graph different from the last save. Pointer movement alone never
// writes.
//
// # Event System
//
// EventBus fans out model updates, loads and saves to subscribers without
// blocking. A subscriber whose channel is full misses the event; OnDrop lets
// the caller count those.
package service
