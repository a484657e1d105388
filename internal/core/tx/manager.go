// Package tx provides transaction management abstractions.
// Domain services depend on these interfaces; the implementation lives in
// infrastructure/storage/postgres (and a pass-through one in storage/memory).
package tx

import (
	"context"
)

// Manager defines the contract for transaction management.
type Manager interface {
	// RunInTransaction executes fn within a database transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn succeeds, the transaction is committed.
	//
	// Nested calls reuse the existing transaction from context.
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// ReadOnlyManager extends Manager with read-only transaction support.
// Use for queries that don't modify data.
type ReadOnlyManager interface {
	Manager

	// ReadOnly executes fn in a read-only transaction with a stable snapshot.
	ReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}
