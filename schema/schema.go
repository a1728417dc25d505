package schema

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/IamKirbki/npm-database-handler-pg/db"
	"github.com/IamKirbki/npm-database-handler-pg/types"
)

// Builder issues schema DDL against the database: it runs the caller's
// definition callback against a fresh Table, wraps the rendered clause into
// a full statement, and dispatches it through the statement layer.
type Builder struct {
	pool    db.Pool
	dialect Dialect
	logger  *slog.Logger
}

// NewBuilder creates a Builder backed by the given pool. A nil dialect
// defaults to Postgres; a nil logger disables DDL logging.
func NewBuilder(pool db.Pool, dialect Dialect, logger *slog.Logger) *Builder {
	if dialect == nil {
		dialect = Postgres{}
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Builder{pool: pool, dialect: dialect, logger: logger}
}

// CreateTable builds a table definition by invoking define synchronously
// with a fresh Table, then issues CREATE TABLE IF NOT EXISTS. The IF NOT
// EXISTS guard makes repeated creation of an unchanged schema a no-op, not
// an error. Usage errors recorded by the builder fail the call before any
// SQL is attempted.
func (b *Builder) CreateTable(ctx context.Context, name string, define func(*Table)) error {
	table := NewTable(name, b.dialect)
	define(table)

	clause, err := table.Build()
	if err != nil {
		return err
	}

	ddl := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s %s", name, clause)
	b.logger.Debug("creating table", "table", name, "ddl", ddl)

	_, err = db.Prepare(ctx, b.pool, ddl).Run(ctx, nil)
	return err
}

// DropTable issues DROP TABLE IF EXISTS; dropping an absent table is not an
// error.
func (b *Builder) DropTable(ctx context.Context, name string) error {
	ddl := fmt.Sprintf("DROP TABLE IF EXISTS %s", name)
	b.logger.Debug("dropping table", "table", name)

	_, err := db.Prepare(ctx, b.pool, ddl).Run(ctx, nil)
	return err
}

// AlterTable is not supported by this adapter generation. It fails with a
// descriptive usage error rather than attempting a partial rewrite.
func (b *Builder) AlterTable(ctx context.Context, name string, define func(*Table)) error {
	return types.NewDBError(types.ErrCodeUsageUnsupported,
		fmt.Sprintf("alter table is not supported by this adapter (table %q)", name), nil)
}
