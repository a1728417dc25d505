// Package db implements the statement and transaction layer of the adapter.
// It translates backend-neutral named-parameter queries into the positional
// form pgx expects, and manages the lifecycle of a pooled connection across
// execution and release.
//
// The connection pool is consumed through the small Pool/Conn capability
// interfaces below, satisfied by *pgxpool.Pool via PgxPool. Tests substitute
// mocks; the adapter never reaches around the interfaces.
package db

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier is the minimal execution interface shared by *pgxpool.Pool,
// *pgxpool.Conn, and the connection handed to transactional work. Code that
// only needs to run SQL accepts this so the same code works inside or
// outside a transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Conn is a single acquired pooled connection. Release returns it to the
// pool; callers must release exactly once.
type Conn interface {
	Querier
	Release()
}

// Pool supplies connections on demand. Acquire returns an error (or a nil
// handle) when no connection is available; callers must not proceed with a
// nil handle.
type Pool interface {
	Acquire(ctx context.Context) (Conn, error)
}

// PgxPool adapts *pgxpool.Pool to the Pool capability interface.
type PgxPool struct {
	pool *pgxpool.Pool
}

// NewPgxPool wraps an existing pgx connection pool.
func NewPgxPool(pool *pgxpool.Pool) *PgxPool {
	return &PgxPool{pool: pool}
}

// Acquire checks a connection out of the underlying pgx pool.
func (p *PgxPool) Acquire(ctx context.Context) (Conn, error) {
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return conn, nil
}

var _ Conn = (*pgxpool.Conn)(nil)
var _ Querier = (*pgxpool.Pool)(nil)

// IsUniqueViolation reports whether err is a PostgreSQL unique constraint
// violation (SQLSTATE 23505). Exposed so the ORM core can branch on
// constraint errors without importing pgconn.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

// IsForeignKeyViolation reports whether err is a PostgreSQL foreign key
// constraint violation (SQLSTATE 23503).
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return false
}
