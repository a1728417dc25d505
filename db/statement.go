package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/IamKirbki/npm-database-handler-pg/types"
)

// Row is a single result row keyed by column name.
type Row map[string]any

// Statement binds one query text to one pooled connection and executes it
// through Run, All, or Get. Whichever entry point is used, the connection is
// returned to the pool exactly once, on success and on every failure path.
// A Statement is single-use: after the first entry-point call the connection
// is gone and further calls execute nothing.
type Statement struct {
	text     string
	q        Querier
	release  func()
	released bool

	// acquireErr records a failed pool acquisition so the entry points can
	// surface it instead of dereferencing a missing handle.
	acquireErr error
}

// Prepare acquires a connection from the pool and binds it to a new
// Statement for the given query text. Acquisition failure is not returned
// here; the Statement is still usable and every entry point will report a
// connection-unavailable error alongside its well-defined empty result.
func Prepare(ctx context.Context, pool Pool, text string) *Statement {
	conn, err := pool.Acquire(ctx)
	if err != nil || conn == nil {
		return &Statement{text: text, acquireErr: err}
	}
	return &Statement{text: text, q: conn, release: conn.Release}
}

// Bind wraps an already-acquired connection, typically the one owned by an
// in-flight transaction. The caller retains release ownership; the
// Statement will not release q.
func Bind(q Querier, text string) *Statement {
	return &Statement{text: text, q: q}
}

// Run translates params, executes the statement for effect, and returns the
// driver's command tag. The connection is released before returning.
func (s *Statement) Run(ctx context.Context, params map[string]any) (pgconn.CommandTag, error) {
	defer s.teardown()

	if s.q == nil {
		return pgconn.CommandTag{}, s.unavailable()
	}

	tq := TranslateNamed(s.text, params)
	tag, err := s.q.Exec(ctx, tq.Text, tq.Values...)
	if err != nil {
		return tag, types.NewDBError(types.ErrCodeBackendQuery, "statement execution failed", err)
	}
	return tag, nil
}

// All translates params, executes the statement, and returns every result
// row in order. Zero rows yields an empty, non-nil slice. The connection is
// released before returning.
func (s *Statement) All(ctx context.Context, params map[string]any) ([]Row, error) {
	defer s.teardown()

	out := []Row{}
	if s.q == nil {
		return out, s.unavailable()
	}

	tq := TranslateNamed(s.text, params)
	rows, err := s.q.Query(ctx, tq.Text, tq.Values...)
	if err != nil {
		return out, types.NewDBError(types.ErrCodeBackendQuery, "statement query failed", err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	for rows.Next() {
		vals, err := rows.Values()
		if err != nil {
			return out, types.NewDBError(types.ErrCodeBackendScan, "failed to decode result row", err)
		}
		row := make(Row, len(vals))
		for i, v := range vals {
			row[fields[i].Name] = v
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return out, types.NewDBError(types.ErrCodeBackendQuery, "result iteration failed", err)
	}
	return out, nil
}

// Get translates params, executes the statement, and returns the first
// result row, or nil with a nil error when the result set is empty. Zero
// rows is never an error here. The connection is released before returning.
func (s *Statement) Get(ctx context.Context, params map[string]any) (Row, error) {
	defer s.teardown()

	if s.q == nil {
		return nil, s.unavailable()
	}

	tq := TranslateNamed(s.text, params)
	rows, err := s.q.Query(ctx, tq.Text, tq.Values...)
	if err != nil {
		return nil, types.NewDBError(types.ErrCodeBackendQuery, "statement query failed", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, types.NewDBError(types.ErrCodeBackendQuery, "result iteration failed", err)
		}
		return nil, nil
	}
	vals, err := rows.Values()
	if err != nil {
		return nil, types.NewDBError(types.ErrCodeBackendScan, "failed to decode result row", err)
	}
	fields := rows.FieldDescriptions()
	row := make(Row, len(vals))
	for i, v := range vals {
		row[fields[i].Name] = v
	}
	return row, nil
}

// teardown releases the bound connection back to the pool. Idempotent: a
// second entry-point call on an already-released Statement must not release
// again.
func (s *Statement) teardown() {
	if s.released || s.release == nil {
		return
	}
	s.released = true
	s.release()
	s.q = nil
}

func (s *Statement) unavailable() error {
	return types.NewDBError(types.ErrCodeConnUnavailable, "no database connection available", s.acquireErr)
}
