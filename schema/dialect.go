package schema

import (
	"fmt"
	"strconv"
	"strings"
)

// Dialect maps the builder's backend-neutral column declarations onto one
// PostgreSQL-family backend's type names and rendering rules. The builder
// accumulates ColumnSpecs; the dialect turns them into text. Swapping the
// dialect swaps the rendered DDL without touching the accumulation logic.
type Dialect interface {
	// Type names. TypeString with length <= 0 renders the bare
	// variable-length string type.
	TypeString(length int) string
	TypeText() string
	TypeInteger() string
	TypeDecimal(precision, scale int) string
	TypeFloat() string
	TypeBoolean() string
	TypeJSON() string
	TypeUUID() string
	TypeTimestamp() string
	TypeTime() string

	// TypeSerial is the auto-incrementing integer type that supersedes a
	// column's declared datatype when Increments is applied.
	TypeSerial() string

	// NowExpression is the default expression for "current instant" columns.
	NowExpression() string

	// QuoteLiteral escapes and single-quotes a string for embedding in DDL
	// text. Embedded quotes are doubled.
	QuoteLiteral(value string) string

	// DefaultLiteral renders a DEFAULT value: strings quoted, numeric and
	// boolean values literal, anything else via generic string conversion.
	// Textual, not parameterized; never pass untrusted input.
	DefaultLiteral(value any) string

	// RenderColumn renders one ColumnSpec as a column-definition fragment.
	RenderColumn(col ColumnSpec) string

	// Placeholder renders the 1-based positional parameter syntax. Kept on
	// the dialect so DML built against it matches the statement layer.
	Placeholder(n int) string
}

// Postgres is the PostgreSQL dialect.
type Postgres struct{}

func (Postgres) TypeString(length int) string {
	if length <= 0 {
		return "VARCHAR"
	}
	return fmt.Sprintf("VARCHAR(%d)", length)
}

func (Postgres) TypeText() string    { return "TEXT" }
func (Postgres) TypeInteger() string { return "INTEGER" }

func (Postgres) TypeDecimal(precision, scale int) string {
	return fmt.Sprintf("DECIMAL(%d,%d)", precision, scale)
}

func (Postgres) TypeFloat() string     { return "FLOAT" }
func (Postgres) TypeBoolean() string   { return "BOOLEAN" }
func (Postgres) TypeJSON() string      { return "JSONB" }
func (Postgres) TypeUUID() string      { return "UUID" }
func (Postgres) TypeTimestamp() string { return "TIMESTAMP" }
func (Postgres) TypeTime() string      { return "TIME" }
func (Postgres) TypeSerial() string    { return "SERIAL" }

func (Postgres) NowExpression() string { return "NOW()" }

func (Postgres) QuoteLiteral(value string) string {
	return "'" + strings.ReplaceAll(value, "'", "''") + "'"
}

func (p Postgres) DefaultLiteral(value any) string {
	switch v := value.(type) {
	case string:
		return p.QuoteLiteral(v)
	default:
		// Numeric and boolean values render literally; anything else falls
		// back to its generic string form.
		return fmt.Sprint(v)
	}
}

func (p Postgres) RenderColumn(col ColumnSpec) string {
	datatype := col.DataType
	if col.AutoIncrement {
		datatype = p.TypeSerial()
	}
	def := strings.TrimSpace(col.Name + " " + datatype)
	if len(col.Constraints) > 0 {
		def += " " + strings.Join(col.Constraints, " ")
	}
	return def
}

func (Postgres) Placeholder(n int) string {
	return "$" + strconv.Itoa(n)
}

var _ Dialect = Postgres{}
