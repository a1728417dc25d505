package db

import (
	"context"

	"github.com/IamKirbki/npm-database-handler-pg/types"
)

// ColumnInfo describes one column of an existing table, sourced from the
// backend catalog.
type ColumnInfo struct {
	Ordinal  int
	Name     string
	DataType string
	Nullable bool
	Default  *string

	// PrimaryKey is always false: information_schema.columns does not carry
	// key membership, and this adapter does not join the constraint catalog
	// to derive it. Known limitation.
	PrimaryKey bool
}

// Inspector reads table metadata from information_schema.
type Inspector struct {
	db Querier
}

// NewInspector creates an Inspector backed by the given database connection
// (pool or transaction).
func NewInspector(db Querier) *Inspector {
	return &Inspector{db: db}
}

// Columns returns the columns of the named table in ordinal order. A table
// with no catalog entry yields an empty slice, not an error.
func (i *Inspector) Columns(ctx context.Context, table string) ([]ColumnInfo, error) {
	rows, err := i.db.Query(ctx,
		`SELECT ordinal_position, column_name, data_type, is_nullable, column_default
		 FROM information_schema.columns
		 WHERE table_name = $1
		 ORDER BY ordinal_position`,
		table,
	)
	if err != nil {
		return nil, types.NewDBError(types.ErrCodeBackendQuery, "failed to query column catalog", err)
	}
	defer rows.Close()

	out := []ColumnInfo{}
	for rows.Next() {
		var (
			col      ColumnInfo
			nullable string
		)
		if err := rows.Scan(&col.Ordinal, &col.Name, &col.DataType, &nullable, &col.Default); err != nil {
			return nil, types.NewDBError(types.ErrCodeBackendScan, "failed to decode column catalog row", err)
		}
		col.Nullable = nullable == "YES"
		out = append(out, col)
	}
	if err := rows.Err(); err != nil {
		return nil, types.NewDBError(types.ErrCodeBackendQuery, "column catalog iteration failed", err)
	}
	return out, nil
}
