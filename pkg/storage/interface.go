// Package storage declares the persistence contracts of the batch service.
// The postgres sub-package is the only production backend; the mock
// sub-package backs unit tests.
//
//go:generate mockgen -package mockstorage -source=interface.go -destination=mock/mockstorage.go *
package storage

import "context"

// AllStorage is every capability available both inside and outside a
// transaction.
type AllStorage interface {
	BatchStorage
	JobStorage
}

// TxStorage is a storage handle bound to an open transaction. It is unusable
// after Commit or Rollback.
type TxStorage interface {
	AllStorage

	Commit() error
	Rollback() error
}

// Storage is the root storage handle owned by the process.
type Storage interface {
	AllStorage

	// Close releases the connection pool.
	Close() error

	// Begin starts a transaction. Nested transactions are not supported.
	Begin(ctx context.Context) (TxStorage, error)
	// WithTx runs cb inside a transaction, committing when cb returns nil and
	// rolling back otherwise.
	WithTx(ctx context.Context, cb func(storage AllStorage) error) error
}
