package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/mock"
)

// --- Mock Pool ---

type mockPool struct {
	mock.Mock
}

func (m *mockPool) Acquire(ctx context.Context) (Conn, error) {
	args := m.Called(ctx)
	if c := args.Get(0); c != nil {
		return c.(Conn), args.Error(1)
	}
	return nil, args.Error(1)
}

// --- Mock Conn ---

type mockConn struct {
	mock.Mock
}

func (m *mockConn) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	args := m.Called(ctx, sql, arguments)
	return args.Get(0).(pgconn.CommandTag), args.Error(1)
}

func (m *mockConn) Query(ctx context.Context, sql string, arguments ...any) (pgx.Rows, error) {
	args := m.Called(ctx, sql, arguments)
	if r := args.Get(0); r != nil {
		return r.(pgx.Rows), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockConn) Release() {
	m.Called()
}

// --- Fake Rows ---

// fakeRows implements pgx.Rows over in-memory data for testing Query-based
// entry points.
type fakeRows struct {
	fields    []pgconn.FieldDescription
	data      [][]any
	idx       int
	closed    bool
	errVal    error
	valuesErr error
	scanErr   error
}

func newFakeRows(fields []string, data [][]any) *fakeRows {
	fds := make([]pgconn.FieldDescription, len(fields))
	for i, f := range fields {
		fds[i] = pgconn.FieldDescription{Name: f}
	}
	return &fakeRows{fields: fds, data: data, idx: -1}
}

func (r *fakeRows) Next() bool {
	if r.closed {
		return false
	}
	r.idx++
	return r.idx < len(r.data)
}

func (r *fakeRows) Values() ([]any, error) {
	if r.valuesErr != nil {
		return nil, r.valuesErr
	}
	return r.data[r.idx], nil
}

func (r *fakeRows) Scan(dest ...any) error {
	if r.scanErr != nil {
		return r.scanErr
	}
	row := r.data[r.idx]
	for i, d := range dest {
		switch v := d.(type) {
		case *int:
			*v = row[i].(int)
		case *string:
			*v = row[i].(string)
		case **string:
			if row[i] == nil {
				*v = nil
			} else {
				s := row[i].(string)
				*v = &s
			}
		}
	}
	return nil
}

func (r *fakeRows) Close()                                       { r.closed = true }
func (r *fakeRows) Err() error                                   { return r.errVal }
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return r.fields }
func (r *fakeRows) RawValues() [][]byte                          { return nil }
func (r *fakeRows) Conn() *pgx.Conn                              { return nil }
