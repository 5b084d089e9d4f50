/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storagemodels

// KeysetBound restricts a query to rows whose ordering token on Column strictly
// exceeds the ordering token of Value.
type KeysetBound struct {
	// Column is the identifier column the ordering token is computed on.
	Column string
	// Value is the identifier of the last row already delivered.
	Value any
}

// Statement is the structured form of an effective query. Gateways render it in
// their own dialect; the base Query carries neither ordering nor limit clauses.
type Statement struct {
	// Query is the base query, a selection with an optional filter predicate.
	Query string
	// Args are bind values for placeholders in Query.
	Args []any
	// After is the keyset lower bound. Nil means start from the beginning.
	After *KeysetBound
	// Limit caps the number of rows returned. Zero means no limit.
	Limit int
}

// NewStatement returns a Statement for query with the given bind values.
func NewStatement(query string, args ...any) Statement {
	return Statement{Query: query, Args: args}
}

// WithAfter returns a copy of s resuming strictly after value on column.
func (s Statement) WithAfter(column string, value any) Statement {
	s.After = &KeysetBound{Column: column, Value: value}
	return s
}

// WithLimit returns a copy of s capped at limit rows.
func (s Statement) WithLimit(limit int) Statement {
	s.Limit = limit
	return s
}
