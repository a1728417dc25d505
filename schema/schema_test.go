package schema

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/IamKirbki/npm-database-handler-pg/db"
	"github.com/IamKirbki/npm-database-handler-pg/types"
)

// --- Mock Pool / Conn (local to this package; the db package's test mocks
// are not exported) ---

type mockPool struct {
	mock.Mock
}

func (m *mockPool) Acquire(ctx context.Context) (db.Conn, error) {
	args := m.Called(ctx)
	if c := args.Get(0); c != nil {
		return c.(db.Conn), args.Error(1)
	}
	return nil, args.Error(1)
}

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

// --- CreateTable Tests ---

func TestBuilder_CreateTable_ComposesDDL(t *testing.T) {
	pool := new(mockPool)
	conn := new(mockConn)
	ctx := context.Background()

	pool.On("Acquire", ctx).Return(conn, nil)
	conn.On("Exec", ctx,
		"CREATE TABLE IF NOT EXISTS posts (id SERIAL PRIMARY KEY, status TEXT CHECK (status IN ('draft', 'published')))",
		mock.Anything,
	).Return(pgconn.NewCommandTag("CREATE TABLE"), nil)
	conn.On("Release").Return()

	b := NewBuilder(pool, nil, nil)
	err := b.CreateTable(ctx, "posts", func(tbl *Table) {
		tbl.Integer("id").Increments().Primary()
		tbl.Enum("status", []string{"draft", "published"})
	})
	require.NoError(t, err)

	conn.AssertNumberOfCalls(t, "Release", 1)
	conn.AssertExpectations(t)
}

func TestBuilder_CreateTable_Idempotent(t *testing.T) {
	pool := new(mockPool)
	ctx := context.Background()

	// Each invocation acquires its own connection; the IF NOT EXISTS guard
	// makes the second identical create succeed at the SQL level.
	define := func(tbl *Table) {
		tbl.Integer("id").Primary()
	}

	for i := 0; i < 2; i++ {
		conn := new(mockConn)
		pool.On("Acquire", ctx).Return(conn, nil).Once()
		conn.On("Exec", ctx, "CREATE TABLE IF NOT EXISTS t (id INTEGER PRIMARY KEY)", mock.Anything).
			Return(pgconn.NewCommandTag("CREATE TABLE"), nil)
		conn.On("Release").Return()

		b := NewBuilder(pool, nil, nil)
		require.NoError(t, b.CreateTable(ctx, "t", define))
		conn.AssertNumberOfCalls(t, "Release", 1)
	}
}

func TestBuilder_CreateTable_UsageErrorSkipsSQL(t *testing.T) {
	pool := new(mockPool)
	ctx := context.Background()

	b := NewBuilder(pool, nil, nil)
	err := b.CreateTable(ctx, "t", func(tbl *Table) {
		tbl.Unique() // modifier before any column
	})
	require.Error(t, err)
	assert.Equal(t, types.ErrCodeUsageNoColumn, types.CodeOf(err))

	pool.AssertNotCalled(t, "Acquire", ctx)
}

func TestBuilder_CreateTable_BackendErrorPropagates(t *testing.T) {
	pool := new(mockPool)
	conn := new(mockConn)
	ctx := context.Background()

	pool.On("Acquire", ctx).Return(conn, nil)
	conn.On("Exec", ctx, mock.AnythingOfType("string"), mock.Anything).
		Return(pgconn.CommandTag{}, errors.New("permission denied for schema public"))
	conn.On("Release").Return()

	b := NewBuilder(pool, nil, nil)
	err := b.CreateTable(ctx, "t", func(tbl *Table) {
		tbl.Integer("id")
	})
	require.Error(t, err)
	assert.Equal(t, types.ErrCodeBackendQuery, types.CodeOf(err))

	conn.AssertNumberOfCalls(t, "Release", 1)
}

func TestBuilder_CreateTable_PoolUnavailable(t *testing.T) {
	pool := new(mockPool)
	ctx := context.Background()

	pool.On("Acquire", ctx).Return(nil, errors.New("pool closed"))

	b := NewBuilder(pool, nil, nil)
	err := b.CreateTable(ctx, "t", func(tbl *Table) {
		tbl.Integer("id")
	})
	require.Error(t, err)
	assert.Equal(t, types.ErrCodeConnUnavailable, types.CodeOf(err))
}

// --- DropTable Tests ---

func TestBuilder_DropTable_ComposesDDL(t *testing.T) {
	pool := new(mockPool)
	conn := new(mockConn)
	ctx := context.Background()

	pool.On("Acquire", ctx).Return(conn, nil)
	conn.On("Exec", ctx, "DROP TABLE IF EXISTS posts", mock.Anything).
		Return(pgconn.NewCommandTag("DROP TABLE"), nil)
	conn.On("Release").Return()

	b := NewBuilder(pool, nil, nil)
	require.NoError(t, b.DropTable(ctx, "posts"))

	conn.AssertNumberOfCalls(t, "Release", 1)
	conn.AssertExpectations(t)
}

// --- AlterTable Tests ---

func TestBuilder_AlterTable_Unsupported(t *testing.T) {
	pool := new(mockPool)
	ctx := context.Background()

	b := NewBuilder(pool, nil, nil)
	err := b.AlterTable(ctx, "posts", func(tbl *Table) {
		tbl.Integer("extra")
	})
	require.Error(t, err)
	assert.Equal(t, types.ErrCodeUsageUnsupported, types.CodeOf(err))
	assert.Contains(t, err.Error(), "not supported")

	pool.AssertNotCalled(t, "Acquire", ctx)
}
