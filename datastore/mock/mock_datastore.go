/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package mock provides an in-memory implementation of the Gateway interface for testing.
//
// The mock evaluates statements structurally: rows are ordered by the ordering token of
// their identifier, Statement.After keeps rows whose token is strictly greater than the
// token of the bound value, and Statement.Limit caps the result.
package mock

import (
	"context"
	"fmt"
	"hash/fnv"
	"sort"
	"sync"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/samber/lo"
	"github.com/suparena/entityquery/datastore"
	"github.com/suparena/entityquery/errors"
	"github.com/suparena/entityquery/registry"
	"github.com/suparena/entityquery/storagemodels"
)

// TokenFunc maps an identifier value to its ordering token.
type TokenFunc func(id any) int64

// DataStore is a mock implementation of datastore.Gateway[T] for testing
type DataStore[T any] struct {
	mu         sync.RWMutex
	rows       []T
	tokenFunc  TokenFunc
	filterFunc func(stmt storagemodels.Statement, row T) bool
	fetchError error
	statements []storagemodels.Statement
}

var _ datastore.Gateway[struct{}] = (*DataStore[struct{}])(nil)

// New creates a new mock DataStore
func New[T any]() *DataStore[T] {
	return &DataStore[T]{
		tokenFunc: Token,
	}
}

// WithRows replaces the stored rows
func (m *DataStore[T]) WithRows(rows ...T) *DataStore[T] {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows = append([]T(nil), rows...)
	return m
}

// WithTokenFunc sets the function computing ordering tokens from identifiers
func (m *DataStore[T]) WithTokenFunc(f TokenFunc) *DataStore[T] {
	m.tokenFunc = f
	return m
}

// WithFilter sets the predicate standing in for the statement's base query
func (m *DataStore[T]) WithFilter(f func(stmt storagemodels.Statement, row T) bool) *DataStore[T] {
	m.filterFunc = f
	return m
}

// WithFetchError makes every fetch fail with err wrapped in a GatewayError
func (m *DataStore[T]) WithFetchError(err error) *DataStore[T] {
	m.fetchError = err
	return m
}

// Put appends rows
func (m *DataStore[T]) Put(rows ...T) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows = append(m.rows, rows...)
}

// Clear removes all rows and recorded statements
func (m *DataStore[T]) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows = nil
	m.statements = nil
}

// Calls returns the number of statements issued against the mock
func (m *DataStore[T]) Calls() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.statements)
}

// Statements returns a copy of the statements issued against the mock
func (m *DataStore[T]) Statements() []storagemodels.Statement {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]storagemodels.Statement(nil), m.statements...)
}

// FetchMany returns the rows matched by stmt in token order
func (m *DataStore[T]) FetchMany(ctx context.Context, stmt storagemodels.Statement) ([]T, error) {
	return m.evaluate(ctx, "FetchMany", stmt)
}

// FetchOne returns the single row matched by stmt
func (m *DataStore[T]) FetchOne(ctx context.Context, stmt storagemodels.Statement) (*T, error) {
	rows, err := m.evaluate(ctx, "FetchOne", stmt.WithLimit(2))
	if err != nil {
		return nil, err
	}
	switch len(rows) {
	case 0:
		return nil, nil
	case 1:
		return &rows[0], nil
	default:
		return nil, errors.NewAmbiguousResultError(registry.EntityName[T](), stmt.Query)
	}
}

// FetchRaw returns the matched rows as column maps
func (m *DataStore[T]) FetchRaw(ctx context.Context, stmt storagemodels.Statement) (datastore.RawResult, error) {
	rows, err := m.evaluate(ctx, "FetchRaw", stmt)
	if err != nil {
		return datastore.RawResult{}, err
	}

	raw := datastore.RawResult{Rows: make([]map[string]any, 0, len(rows))}
	for _, row := range rows {
		var values map[string]any
		if err := mapstructure.Decode(row, &values); err != nil {
			return datastore.RawResult{}, fmt.Errorf("failed to convert row: %w", err)
		}
		raw.Rows = append(raw.Rows, values)
	}
	if len(raw.Rows) > 0 {
		raw.Columns = lo.Keys(raw.Rows[0])
		sort.Strings(raw.Columns)
	}
	return raw, nil
}

// Stream emits the matched rows, grouped into pages of the configured page size
func (m *DataStore[T]) Stream(ctx context.Context, stmt storagemodels.Statement, opts ...storagemodels.StreamOption) <-chan storagemodels.StreamResult[T] {
	options := storagemodels.ApplyStreamOptions(opts...)
	resultCh := make(chan storagemodels.StreamResult[T], options.BufferSize)

	go func() {
		defer close(resultCh)

		start := time.Now()
		rows, err := m.evaluate(ctx, "Stream", stmt)
		if err != nil {
			select {
			case <-ctx.Done():
			case resultCh <- storagemodels.StreamResult[T]{Error: err, Meta: storagemodels.StreamMeta{Timestamp: time.Now()}}:
			}
			return
		}

		pageSize := int(options.PageSize)
		if pageSize <= 0 {
			pageSize = len(rows) + 1
		}
		pages := 0
		for i, row := range rows {
			page := i/pageSize + 1
			select {
			case <-ctx.Done():
				return
			case resultCh <- storagemodels.StreamResult[T]{
				Item: row,
				Meta: storagemodels.StreamMeta{
					Index:      int64(i),
					PageNumber: page,
					Timestamp:  time.Now(),
				},
			}:
			}
			if page != pages {
				pages = page
				options.ReportProgress(int64(i+1), pages, start)
			}
		}
		options.ReportProgress(int64(len(rows)), pages, start)
	}()

	return resultCh
}

func (m *DataStore[T]) evaluate(ctx context.Context, op string, stmt storagemodels.Statement) ([]T, error) {
	m.mu.Lock()
	m.statements = append(m.statements, stmt)
	rows := append([]T(nil), m.rows...)
	m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, errors.NewGatewayError(op, err)
	}
	if m.fetchError != nil {
		return nil, errors.NewGatewayError(op, m.fetchError)
	}

	if m.filterFunc != nil {
		rows = lo.Filter(rows, func(row T, _ int) bool { return m.filterFunc(stmt, row) })
	}

	id, hasID := registry.IdentifierOf[T]()
	if hasID {
		sort.SliceStable(rows, func(i, j int) bool {
			return m.tokenFunc(id.Read(rows[i])) < m.tokenFunc(id.Read(rows[j]))
		})
	}

	if stmt.After != nil {
		if !hasID {
			return nil, errors.NewGatewayError(op, fmt.Errorf("no identifier column %q on %s", stmt.After.Column, registry.EntityName[T]()))
		}
		bound := m.tokenFunc(stmt.After.Value)
		rows = lo.Filter(rows, func(row T, _ int) bool { return m.tokenFunc(id.Read(row)) > bound })
	}

	if stmt.Limit > 0 && len(rows) > stmt.Limit {
		rows = rows[:stmt.Limit]
	}
	return rows, nil
}

// Token is the default ordering token: integers order naturally, everything else by a
// 64-bit FNV-1a hash of its printed form, so non-numeric identifiers come back in an
// order unrelated to their natural order, as they do from a hash partitioner.
func Token(id any) int64 {
	switch v := id.(type) {
	case int:
		return int64(v)
	case int8:
		return int64(v)
	case int16:
		return int64(v)
	case int32:
		return int64(v)
	case int64:
		return v
	case uint8:
		return int64(v)
	case uint16:
		return int64(v)
	case uint32:
		return int64(v)
	}
	h := fnv.New64a()
	_, _ = fmt.Fprint(h, id)
	return int64(h.Sum64())
}
