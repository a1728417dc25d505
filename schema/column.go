// Package schema implements the DDL side of the adapter: a fluent table
// builder that accumulates column specifications and renders them into
// backend DDL text, and an orchestrator that wraps the rendered clause into
// CREATE/DROP statements and dispatches them through the statement layer.
package schema

// ColumnSpec is one accumulated column declaration. Modifier operations
// mutate the most recently appended spec; rendering is delegated to a
// Dialect.
type ColumnSpec struct {
	Name        string
	DataType    string
	Constraints []string

	// AutoIncrement supersedes DataType at render time with the dialect's
	// serial/identity type.
	AutoIncrement bool
}
