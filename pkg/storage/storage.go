// Package storage defines the persistence boundary of the ledger.
package storage

// Storage is everything a ledger store provides: the read side used by the API
// and the audit, and the Applier the engine commits transitions through.
// Consumers that only read should depend on ApiStore or a single reader.
type Storage interface {
	ApiStore
	Applier
}
