package memory

import (
	"context"
	"sync"

	"backoffice/internal/core/tx"
)

var _ tx.ReadOnlyManager = (*TxManager)(nil)

type txKey struct{}

// TxManager gives the shift store all-or-nothing writes: the store is
// snapshotted before fn runs and restored if fn fails. Writers are
// serialized; readers are not blocked.
type TxManager struct {
	store *ShiftStore
	mu    sync.Mutex
}

// NewTxManager creates a transaction manager for store.
func NewTxManager(store *ShiftStore) *TxManager {
	return &TxManager{store: store}
}

// RunInTransaction implements tx.Manager. Nested calls join the outer one.
func (m *TxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	snap := m.store.snapshot()
	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		m.store.restore(snap)
		return err
	}
	return nil
}

// ReadOnly implements tx.ReadOnlyManager.
func (m *TxManager) ReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
