/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package cql

import (
	"context"

	gocql "github.com/apache/cassandra-gocql-driver/v2"
	"github.com/samber/lo"
	"github.com/suparena/entityquery/datastore"
	"github.com/suparena/entityquery/errors"
	"github.com/suparena/entityquery/log"
	"github.com/suparena/entityquery/registry"
	"github.com/suparena/entityquery/storagemodels"
)

func (c *CassandraDataStore[T]) iter(ctx context.Context, stmt storagemodels.Statement) *gocql.Iter {
	query, args := Render(stmt)
	c.logger.With(ctx).WithParams(log.Params{"query": query, "args": len(args)}).Debug("executing cql")
	return c.session.Query(query, args...).WithContext(ctx).Iter()
}

// FetchMany returns every row matched by stmt in token order
func (c *CassandraDataStore[T]) FetchMany(ctx context.Context, stmt storagemodels.Statement) ([]T, error) {
	iter := c.iter(ctx, stmt)

	var rows []T
	var decodeErr error
	for {
		row := make(map[string]any)
		if !iter.MapScan(row) {
			break
		}
		item, err := decodeRow[T](row, c.tagName)
		if err != nil {
			decodeErr = err
			break
		}
		rows = append(rows, item)
	}

	if err := iter.Close(); err != nil {
		return nil, errors.NewGatewayError("Query", err)
	}
	if decodeErr != nil {
		return nil, decodeErr
	}
	return rows, nil
}

// FetchOne returns the single row matched by stmt. At most two rows are read to
// detect an ambiguous result.
func (c *CassandraDataStore[T]) FetchOne(ctx context.Context, stmt storagemodels.Statement) (*T, error) {
	rows, err := c.FetchMany(ctx, stmt.WithLimit(2))
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

// FetchRaw returns the rows of stmt as column maps, along with the column names and
// the paging state of the first page.
func (c *CassandraDataStore[T]) FetchRaw(ctx context.Context, stmt storagemodels.Statement) (datastore.RawResult, error) {
	iter := c.iter(ctx, stmt)

	raw := datastore.RawResult{
		Columns: lo.Map(iter.Columns(), func(col gocql.ColumnInfo, _ int) string { return col.Name }),
		Rows:    []map[string]any{},
	}
	for {
		row := make(map[string]any)
		if !iter.MapScan(row) {
			break
		}
		raw.Rows = append(raw.Rows, row)
	}
	raw.PagingState = iter.PageState()

	if err := iter.Close(); err != nil {
		return datastore.RawResult{}, errors.NewGatewayError("Query", err)
	}
	return raw, nil
}
