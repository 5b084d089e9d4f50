/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datastore

import (
	"context"

	"github.com/suparena/entityquery/storagemodels"
)

//go:generate mockgen --source=datastore.go --destination=gateway_mock.go --package datastore

// Gateway issues statements against a store and materializes rows of type T.
// Implementations render Statement.After and Statement.Limit in their own dialect
// and wrap driver failures in errors.GatewayError.
type Gateway[T any] interface {
	// FetchMany returns every row matched by stmt, in ascending ordering-token order.
	FetchMany(ctx context.Context, stmt storagemodels.Statement) ([]T, error)

	// FetchOne returns the single matching row, nil when nothing matched, and an
	// errors.AmbiguousResultError when more than one row matched.
	FetchOne(ctx context.Context, stmt storagemodels.Statement) (*T, error)

	// FetchRaw returns the store's unmapped result.
	FetchRaw(ctx context.Context, stmt storagemodels.Statement) (RawResult, error)

	// Stream lazily pages through the rows matched by stmt. The channel is closed when
	// the rows are exhausted, the context is done, or a fetch error has been delivered.
	Stream(ctx context.Context, stmt storagemodels.Statement, opts ...storagemodels.StreamOption) <-chan storagemodels.StreamResult[T]
}

// RawResult is the protocol-level result of a statement, bypassing entity mapping.
type RawResult struct {
	// Columns lists the result columns in store order, when the store reports them.
	Columns []string
	// Rows holds one map per row, keyed by column name, with driver-native values.
	Rows []map[string]any
	// PagingState is the store's opaque resume handle, empty when the result is complete.
	PagingState []byte
}

// Len returns the number of rows in the result.
func (r RawResult) Len() int {
	return len(r.Rows)
}
