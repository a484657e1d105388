package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"backoffice/internal/core/tx"
	"backoffice/pkg/logger"
)

var tracer = otel.Tracer("backoffice/postgres")

var (
	_ tx.Manager         = (*TxManager)(nil)
	_ tx.ReadOnlyManager = (*TxManager)(nil)
)

// TxOptions configures transaction behavior.
type TxOptions struct {
	IsolationLevel pgx.TxIsoLevel
	AccessMode     pgx.TxAccessMode

	// StatementTimeout bounds every statement of the transaction. Zero disables it.
	StatementTimeout time.Duration
}

// Querier is satisfied by both the pool and an open transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TxManager runs functions in transactions carried through the context.
// Repositories call GetQuerier to work both inside and outside a transaction.
type TxManager struct {
	pool             *pgxpool.Pool
	statementTimeout time.Duration
}

// NewTxManager creates a transaction manager.
// statementTimeout applies to every transaction it opens.
func NewTxManager(pool *Pool, statementTimeout time.Duration) *TxManager {
	return &TxManager{pool: pool.Pool, statementTimeout: statementTimeout}
}

// DefaultTxOptions returns read-committed, read-write options.
func (m *TxManager) DefaultTxOptions() TxOptions {
	return TxOptions{
		IsolationLevel:   pgx.ReadCommitted,
		AccessMode:       pgx.ReadWrite,
		StatementTimeout: m.statementTimeout,
	}
}

type txKey struct{}

// Tx wraps pgx.Tx with nesting metadata.
type Tx struct {
	pgx.Tx
	readOnly bool
}

// RunInTransaction executes fn within a transaction, joining an existing one.
func (m *TxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.RunInTransactionWithOptions(ctx, m.DefaultTxOptions(), fn)
}

// ReadOnly executes fn in a repeatable-read, read-only transaction, so every
// statement in fn sees the same snapshot.
func (m *TxManager) ReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	opts := m.DefaultTxOptions()
	opts.IsolationLevel = pgx.RepeatableRead
	opts.AccessMode = pgx.ReadOnly
	return m.RunInTransactionWithOptions(ctx, opts, fn)
}

// RunInTransactionWithOptions executes fn with explicit options.
func (m *TxManager) RunInTransactionWithOptions(ctx context.Context, opts TxOptions, fn func(ctx context.Context) error) error {
	ctx, span := tracer.Start(ctx, "postgres.tx",
		trace.WithAttributes(
			attribute.String("tx.isolation", string(opts.IsolationLevel)),
			attribute.String("tx.access", string(opts.AccessMode)),
		))
	defer span.End()

	var err error
	if existing := m.GetTx(ctx); existing != nil {
		span.SetAttributes(attribute.Bool("tx.nested", true))
		err = m.runNested(ctx, existing, opts, fn)
	} else {
		err = m.runNew(ctx, opts, fn)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func (m *TxManager) runNew(ctx context.Context, opts TxOptions, fn func(ctx context.Context) error) error {
	pgTx, err := m.pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   opts.IsolationLevel,
		AccessMode: opts.AccessMode,
	})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if opts.StatementTimeout > 0 {
		_, err = pgTx.Exec(ctx, fmt.Sprintf("SET LOCAL statement_timeout = '%dms'", opts.StatementTimeout.Milliseconds()))
		if err != nil {
			_ = pgTx.Rollback(context.Background())
			return fmt.Errorf("set statement_timeout: %w", err)
		}
	}

	txCtx := context.WithValue(ctx, txKey{}, &Tx{Tx: pgTx, readOnly: opts.AccessMode == pgx.ReadOnly})

	if err := fn(txCtx); err != nil {
		// Rollback must complete even if ctx is already cancelled.
		if rbErr := pgTx.Rollback(context.Background()); rbErr != nil {
			logger.Error(ctx, "rollback failed", "error", rbErr, "original_error", err)
		}
		return err
	}

	if err := pgTx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// runNested joins the outer transaction. A read-write call cannot join a
// read-only one.
func (m *TxManager) runNested(ctx context.Context, existing *Tx, opts TxOptions, fn func(ctx context.Context) error) error {
	if existing.readOnly && opts.AccessMode != pgx.ReadOnly {
		return fmt.Errorf("read-write transaction requested inside a read-only one")
	}
	return fn(ctx)
}

// GetTx returns the transaction carried by ctx, or nil.
func (m *TxManager) GetTx(ctx context.Context) *Tx {
	if t, ok := ctx.Value(txKey{}).(*Tx); ok {
		return t
	}
	return nil
}

// GetQuerier returns the transaction in ctx or the pool.
func (m *TxManager) GetQuerier(ctx context.Context) Querier {
	if t := m.GetTx(ctx); t != nil {
		return t.Tx
	}
	return m.pool
}
