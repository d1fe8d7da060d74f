// Package repository defines the data access interfaces for hostident.
//
// The only persisted entity is the identity snapshot written once per process
// start. The implementation lives in the sqlite subpackage.
//
// # Testing
//
// The sqlite repository is tested against in-memory databases.
package repository
