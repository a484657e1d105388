package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// BatchInserter bulk-inserts rows with the COPY protocol.
type BatchInserter struct {
	txManager *TxManager
}

// NewBatchInserter creates a new batch inserter.
func NewBatchInserter(txManager *TxManager) *BatchInserter {
	return &BatchInserter{txManager: txManager}
}

// CopyFromSlice copies rows into table. Each row matches columns.
// Must run inside a transaction so the copy commits with the rest of the write.
func (b *BatchInserter) CopyFromSlice(ctx context.Context, table string, columns []string, rows [][]any) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	t := b.txManager.GetTx(ctx)
	if t == nil {
		return 0, fmt.Errorf("CopyFromSlice requires transaction context")
	}
	return t.CopyFrom(ctx, pgx.Identifier{table}, columns, pgx.CopyFromRows(rows))
}

// BatchExecutor sends several statements in one round-trip.
type BatchExecutor struct {
	txManager *TxManager
}

// NewBatchExecutor creates a new batch executor.
func NewBatchExecutor(txManager *TxManager) *BatchExecutor {
	return &BatchExecutor{txManager: txManager}
}

// BatchQuery is one statement of a batch.
type BatchQuery struct {
	SQL  string
	Args []any
}

// ExecuteBatch runs queries in order and returns rows affected per query.
func (e *BatchExecutor) ExecuteBatch(ctx context.Context, queries []BatchQuery) ([]int64, error) {
	t := e.txManager.GetTx(ctx)
	if t == nil {
		return nil, fmt.Errorf("ExecuteBatch requires transaction context")
	}

	batch := &pgx.Batch{}
	for _, q := range queries {
		batch.Queue(q.SQL, q.Args...)
	}

	results := t.SendBatch(ctx, batch)
	defer results.Close()

	affected := make([]int64, 0, len(queries))
	for i := range queries {
		tag, err := results.Exec()
		if err != nil {
			return nil, fmt.Errorf("batch query %d failed: %w", i, err)
		}
		affected = append(affected, tag.RowsAffected())
	}
	return affected, nil
}
