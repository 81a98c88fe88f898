package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"packquote/internal/core/apperror"
	"packquote/pkg/logger"
)

// Querier is the query surface shared by the pool and an open
// transaction. Repositories run against it and transparently join the
// active transaction when one travels in the context.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type txKey struct{}

// QuerierFrom returns the active transaction from ctx, or the pool.
func QuerierFrom(ctx context.Context, pool *pgxpool.Pool) Querier {
	if tx, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return tx
	}
	return pool
}

// PoolQuerier wraps the pool in a Querier that joins the ambient
// transaction per call. Used by collaborators that hold a long-lived
// handle instead of resolving the querier themselves.
func PoolQuerier(pool *pgxpool.Pool) Querier {
	return poolQuerier{pool: pool}
}

type poolQuerier struct {
	pool *pgxpool.Pool
}

func (q poolQuerier) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return QuerierFrom(ctx, q.pool).Exec(ctx, sql, args...)
}

func (q poolQuerier) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return QuerierFrom(ctx, q.pool).Query(ctx, sql, args...)
}

func (q poolQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return QuerierFrom(ctx, q.pool).QueryRow(ctx, sql, args...)
}

// TxManager implements tx.Manager over a pgx pool.
type TxManager struct {
	pool             *pgxpool.Pool
	statementTimeout time.Duration
	tracer           trace.Tracer
}

// NewTxManager creates a transaction manager. statementTimeout, when
// positive, is applied with SET LOCAL inside every transaction.
func NewTxManager(pool *pgxpool.Pool, statementTimeout time.Duration) *TxManager {
	return &TxManager{
		pool:             pool,
		statementTimeout: statementTimeout,
		tracer:           otel.Tracer("packquote/tx"),
	}
}

// RunInTransaction executes fn atomically. A nested call joins the
// ambient transaction instead of opening a second one.
func (m *TxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return fn(ctx)
	}

	ctx, span := m.tracer.Start(ctx, "postgres.tx")
	defer span.End()

	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return apperror.NewDatabase(fmt.Errorf("begin: %w", err))
	}

	if m.statementTimeout > 0 {
		_, err = tx.Exec(ctx, fmt.Sprintf("SET LOCAL statement_timeout = %d", m.statementTimeout.Milliseconds()))
		if err != nil {
			m.rollback(ctx, tx)
			return apperror.NewDatabase(fmt.Errorf("set statement_timeout: %w", err))
		}
	}

	txCtx := context.WithValue(ctx, txKey{}, tx)
	if err := fn(txCtx); err != nil {
		m.rollback(ctx, tx)
		span.RecordError(err)
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return apperror.NewDatabase(fmt.Errorf("commit: %w", err))
	}
	return nil
}

// rollback uses a detached context so an aborted request context cannot
// leave the transaction dangling.
func (m *TxManager) rollback(ctx context.Context, tx pgx.Tx) {
	rbCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := tx.Rollback(rbCtx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		logger.Error(ctx, "transaction rollback failed", zap.Error(err))
	}
}
