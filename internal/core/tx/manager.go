// Package tx defines the transaction management abstraction.
// Services depend on this interface; the Postgres implementation lives
// in internal/infrastructure/storage/postgres.
package tx

import "context"

// Manager runs a function within a database transaction.
// The transaction handle travels through the context so repositories
// called inside fn join the same transaction transparently.
type Manager interface {
	// RunInTransaction executes fn atomically. If fn returns an error
	// the transaction is rolled back, otherwise it is committed.
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
