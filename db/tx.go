package db

import (
	"context"
	"io"
	"log/slog"

	"github.com/IamKirbki/npm-database-handler-pg/types"
)

// TxFunc is the caller-supplied work run inside a transaction. The Querier
// it receives is bound to the transaction's connection; statements built on
// it (via Bind) participate in the transaction.
type TxFunc func(ctx context.Context, q Querier) error

// Coordinator runs caller-supplied work inside a single-connection
// transaction: acquire, BEGIN, work, then COMMIT or ROLLBACK. Exactly one
// of COMMIT/ROLLBACK is issued per invocation and the connection is
// released exactly once on every path.
type Coordinator struct {
	pool   Pool
	logger *slog.Logger
}

// NewCoordinator creates a Coordinator backed by the given pool. A nil
// logger disables transaction logging.
func NewCoordinator(pool Pool, logger *slog.Logger) *Coordinator {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Coordinator{pool: pool, logger: logger}
}

// Transact acquires a connection, issues BEGIN, and invokes fn. When fn
// returns nil the transaction is committed; when fn returns an error the
// transaction is rolled back and fn's original error is returned to the
// caller, never masked by rollback plumbing. The one exception: if ROLLBACK
// itself fails, that more severe failure supersedes the original and is
// returned instead.
//
// If no connection is available the Coordinator fails immediately with a
// connection-unavailable error; BEGIN is never attempted without a
// connection.
func (c *Coordinator) Transact(ctx context.Context, fn TxFunc) error {
	conn, err := c.pool.Acquire(ctx)
	if err != nil {
		return types.NewDBError(types.ErrCodeConnUnavailable, "no connection available for transaction", err)
	}
	if conn == nil {
		return types.NewDBError(types.ErrCodeConnUnavailable, "no connection available for transaction", nil)
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, "BEGIN"); err != nil {
		return types.NewDBError(types.ErrCodeTxBegin, "failed to begin transaction", err)
	}

	if workErr := fn(ctx, conn); workErr != nil {
		c.logger.Debug("transaction work failed, rolling back", "error", workErr)
		if _, rbErr := conn.Exec(ctx, "ROLLBACK"); rbErr != nil {
			c.logger.Error("rollback failed", "error", rbErr, "work_error", workErr)
			return types.NewDBError(types.ErrCodeTxRollback, "rollback failed after work error", rbErr)
		}
		return workErr
	}

	if _, err := conn.Exec(ctx, "COMMIT"); err != nil {
		return types.NewDBError(types.ErrCodeTxCommit, "failed to commit transaction", err)
	}
	c.logger.Debug("transaction committed")
	return nil
}
