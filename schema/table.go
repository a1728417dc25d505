package schema

import (
	"fmt"
	"strings"

	"github.com/IamKirbki/npm-database-handler-pg/types"
)

// Table is a single-use fluent accumulator for one table definition.
// Datatype methods append a column and return the builder for chaining;
// modifier methods mutate the most recently appended column.
//
// A modifier called before any column exists is a usage error. Because a
// fluent chain cannot return an error mid-flight, the builder records the
// first such error and every subsequent Build (and the orchestrator's
// CreateTable) fails with it. Nothing is silently dropped.
//
// Build does not reset the builder; reusing a Table after Build is
// undefined behavior.
type Table struct {
	name    string
	dialect Dialect
	columns []ColumnSpec
	err     error
}

// NewTable creates a builder for the named table. A nil dialect defaults to
// Postgres.
func NewTable(name string, dialect Dialect) *Table {
	if dialect == nil {
		dialect = Postgres{}
	}
	return &Table{name: name, dialect: dialect}
}

// Name returns the table name the builder was created for.
func (t *Table) Name() string { return t.name }

// Err returns the first usage error recorded by a misused modifier, or nil.
func (t *Table) Err() error { return t.err }

func (t *Table) append(name, datatype string) *Table {
	t.columns = append(t.columns, ColumnSpec{Name: name, DataType: datatype})
	return t
}

// last returns the most recently appended column, recording a usage error
// and returning nil when no column exists yet.
func (t *Table) last(modifier string) *ColumnSpec {
	if len(t.columns) == 0 {
		if t.err == nil {
			t.err = types.NewDBError(types.ErrCodeUsageNoColumn,
				fmt.Sprintf("%s called before any column was declared on table %q", modifier, t.name), nil)
		}
		return nil
	}
	return &t.columns[len(t.columns)-1]
}

func (t *Table) constrain(modifier, constraint string) *Table {
	if col := t.last(modifier); col != nil {
		col.Constraints = append(col.Constraints, constraint)
	}
	return t
}

// --- Datatype methods ---

// String appends a variable-length string column. The optional length
// defaults to 255.
func (t *Table) String(name string, length ...int) *Table {
	n := 255
	if len(length) > 0 {
		n = length[0]
	}
	return t.append(name, t.dialect.TypeString(n))
}

// Text appends an unbounded text column.
func (t *Table) Text(name string) *Table {
	return t.append(name, t.dialect.TypeText())
}

// Integer appends an integer column.
func (t *Table) Integer(name string) *Table {
	return t.append(name, t.dialect.TypeInteger())
}

// Decimal appends a fixed-point column. Optional precision and scale
// default to 8 and 2.
func (t *Table) Decimal(name string, precisionScale ...int) *Table {
	precision, scale := 8, 2
	if len(precisionScale) > 0 {
		precision = precisionScale[0]
	}
	if len(precisionScale) > 1 {
		scale = precisionScale[1]
	}
	return t.append(name, t.dialect.TypeDecimal(precision, scale))
}

// Float appends a floating-point column.
func (t *Table) Float(name string) *Table {
	return t.append(name, t.dialect.TypeFloat())
}

// Boolean appends a boolean column.
func (t *Table) Boolean(name string) *Table {
	return t.append(name, t.dialect.TypeBoolean())
}

// JSON appends a JSON document column.
func (t *Table) JSON(name string) *Table {
	return t.append(name, t.dialect.TypeJSON())
}

// UUID appends a UUID column.
func (t *Table) UUID(name string) *Table {
	return t.append(name, t.dialect.TypeUUID())
}

// Timestamp appends a timestamp column.
func (t *Table) Timestamp(name string) *Table {
	return t.append(name, t.dialect.TypeTimestamp())
}

// Time appends a time-of-day column.
func (t *Table) Time(name string) *Table {
	return t.append(name, t.dialect.TypeTime())
}

// Enum appends a text column restricted to the given values by a membership
// check constraint. The values are escaped by doubling embedded quotes;
// they do not pass through the parameter translator, so escaping here is
// the builder's responsibility.
func (t *Table) Enum(name string, values []string) *Table {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = t.dialect.QuoteLiteral(v)
	}
	t.append(name, t.dialect.TypeText())
	return t.constrain("Enum", fmt.Sprintf("CHECK (%s IN (%s))", name, strings.Join(quoted, ", ")))
}

// --- Modifier methods ---

// Primary marks the most recent column as the primary key.
func (t *Table) Primary() *Table {
	return t.constrain("Primary", "PRIMARY KEY")
}

// Increments converts the most recent column to the backend's
// auto-incrementing integer type, superseding its declared datatype.
func (t *Table) Increments() *Table {
	if col := t.last("Increments"); col != nil {
		col.AutoIncrement = true
	}
	return t
}

// References adds a foreign key constraint on the most recent column.
func (t *Table) References(table, column string) *Table {
	return t.constrain("References", fmt.Sprintf("REFERENCES %s(%s)", table, column))
}

// Unique adds a uniqueness constraint on the most recent column.
func (t *Table) Unique() *Table {
	return t.constrain("Unique", "UNIQUE")
}

// Nullable marks the most recent column as explicitly nullable.
func (t *Table) Nullable() *Table {
	return t.constrain("Nullable", "NULL")
}

// NotNullable marks the most recent column as non-nullable.
func (t *Table) NotNullable() *Table {
	return t.constrain("NotNullable", "NOT NULL")
}

// DefaultTo sets a textual DEFAULT on the most recent column. Strings are
// single-quoted, numeric and boolean values render literally, anything else
// via generic string conversion. This is not a parameterized path; never
// pass untrusted input.
func (t *Table) DefaultTo(value any) *Table {
	return t.constrain("DefaultTo", "DEFAULT "+t.dialect.DefaultLiteral(value))
}

// --- Compound helpers ---

// Timestamps appends created_at and updated_at timestamp columns, each
// defaulting to the current instant.
func (t *Table) Timestamps() *Table {
	now := t.dialect.NowExpression()
	t.append("created_at", t.dialect.TypeTimestamp()).constrain("Timestamps", "DEFAULT "+now)
	t.append("updated_at", t.dialect.TypeTimestamp()).constrain("Timestamps", "DEFAULT "+now)
	return t
}

// SoftDeletes appends a nullable deleted_at timestamp column used as the
// soft-delete marker.
func (t *Table) SoftDeletes() *Table {
	t.append("deleted_at", t.dialect.TypeTimestamp()).constrain("SoftDeletes", "NULL")
	return t
}

// Morphs appends the polymorphic-relation pair for prefix: an integer
// <prefix>_id column and a string <prefix>_type column.
func (t *Table) Morphs(prefix string) *Table {
	t.append(prefix+"_id", t.dialect.TypeInteger())
	t.append(prefix+"_type", t.dialect.TypeString(0))
	return t
}

// Build renders the parenthesized column-definition clause for the
// accumulated columns, or the first recorded usage error. Build does not
// reset the builder.
func (t *Table) Build() (string, error) {
	if t.err != nil {
		return "", t.err
	}
	defs := make([]string, len(t.columns))
	for i, col := range t.columns {
		defs[i] = t.dialect.RenderColumn(col)
	}
	return "(" + strings.Join(defs, ", ") + ")", nil
}
