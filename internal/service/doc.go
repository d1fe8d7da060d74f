// Package service implements the business logic between the HTTP handlers
// and the repository layer.
//
// SnapshotService persists one identity snapshot per process start and
// reports drift (hostname or address changes) relative to the previous start.
package service
