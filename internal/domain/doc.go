// Package domain defines the persisted records of hostident.
//
// # Snapshots
//
// A Snapshot is the identity a process resolved at startup. Snapshots are
// append-only; comparing the latest two with DriftFrom shows whether the host
// restarted under a different name or address.
//
// # Design Principles
//
// - Immutable value objects
// - No database or external dependencies
package domain
