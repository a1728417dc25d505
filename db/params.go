package db

import (
	"regexp"
	"strconv"
)

// TranslatedQuery is the result of rewriting a named-parameter query into
// positional form: the rewritten text plus the ordered value list to bind.
type TranslatedQuery struct {
	Text   string
	Values []any
}

// PlaceholderFunc renders a 1-based positional index in the backend's
// placeholder syntax.
type PlaceholderFunc func(n int) string

// PostgresPlaceholder renders the pgx wire-protocol placeholder, $n.
func PostgresPlaceholder(n int) string {
	return "$" + strconv.Itoa(n)
}

// namedParamPattern matches a named-parameter token: the @ sigil followed by
// a word of letters, digits, and underscores.
var namedParamPattern = regexp.MustCompile(`@([A-Za-z0-9_]+)`)

// TranslateNamed rewrites @name tokens in text into PostgreSQL positional
// placeholders and collects the bound values in order of first appearance.
//
// Each distinct name is assigned the next unused 1-based index on its first
// occurrence; repeated occurrences reuse that index without duplicating the
// value, so the value list length always equals the number of distinct
// names. A name with no entry in params binds SQL NULL rather than failing.
//
// When params is nil or empty the text is returned unchanged with no values;
// this is the fast path for static DDL.
//
// The text is treated as a flat token stream: @-sequences inside string
// literals or comments are rewritten too. Queries mixing named parameters
// with literal @ text are not supported.
func TranslateNamed(text string, params map[string]any) TranslatedQuery {
	return Translate(text, params, PostgresPlaceholder)
}

// Translate is TranslateNamed with a caller-supplied placeholder renderer,
// for PostgreSQL-family backends with a different positional syntax.
func Translate(text string, params map[string]any, placeholder PlaceholderFunc) TranslatedQuery {
	if len(params) == 0 {
		return TranslatedQuery{Text: text, Values: []any{}}
	}

	indexes := make(map[string]int, len(params))
	values := make([]any, 0, len(params))

	rewritten := namedParamPattern.ReplaceAllStringFunc(text, func(token string) string {
		name := token[1:] // strip the sigil
		idx, seen := indexes[name]
		if !seen {
			idx = len(values) + 1
			indexes[name] = idx
			values = append(values, params[name]) // missing names yield nil
		}
		return placeholder(idx)
	})

	return TranslatedQuery{Text: rewritten, Values: values}
}
