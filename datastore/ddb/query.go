/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/samber/lo"
	"github.com/suparena/entityquery/datastore"
	"github.com/suparena/entityquery/errors"
	"github.com/suparena/entityquery/log"
	"github.com/suparena/entityquery/registry"
	"github.com/suparena/entityquery/storagemodels"
)

func (d *DynamodbDataStore[T]) input(ctx context.Context, stmt storagemodels.Statement) (*sdk.ExecuteStatementInput, error) {
	query, params, err := Render(stmt)
	if err != nil {
		return nil, err
	}
	d.logger.With(ctx).WithParams(log.Params{"table": d.tableName, "statement": query, "params": len(params)}).Debug("executing partiql")

	input := &sdk.ExecuteStatementInput{
		Statement:  aws.String(query),
		Parameters: params,
	}
	if d.consistentRead {
		input.ConsistentRead = aws.Bool(true)
	}
	return input, nil
}

// fetchItems follows NextToken until limit items are collected, or the result is
// exhausted when limit is zero. The returned token is non-nil when more items remain.
func (d *DynamodbDataStore[T]) fetchItems(ctx context.Context, stmt storagemodels.Statement) ([]map[string]types.AttributeValue, *string, error) {
	input, err := d.input(ctx, stmt)
	if err != nil {
		return nil, nil, err
	}

	var items []map[string]types.AttributeValue
	for {
		if stmt.Limit > 0 {
			input.Limit = aws.Int32(int32(stmt.Limit - len(items)))
		}

		out, err := d.client.ExecuteStatement(ctx, input)
		if err != nil {
			return nil, nil, errors.NewGatewayError("ExecuteStatement", err)
		}
		items = append(items, out.Items...)

		if stmt.Limit > 0 && len(items) >= stmt.Limit {
			return items[:stmt.Limit], out.NextToken, nil
		}
		if aws.ToString(out.NextToken) == "" {
			return items, nil, nil
		}
		input.NextToken = out.NextToken
	}
}

// FetchMany returns the items matched by stmt in sort key order
func (d *DynamodbDataStore[T]) FetchMany(ctx context.Context, stmt storagemodels.Statement) ([]T, error) {
	items, _, err := d.fetchItems(ctx, stmt)
	if err != nil {
		return nil, err
	}

	rows := make([]T, 0, len(items))
	for _, item := range items {
		var row T
		if err := attributevalue.UnmarshalMap(item, &row); err != nil {
			return nil, fmt.Errorf("failed to unmarshal item: %w", err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// FetchOne returns the single item matched by stmt
func (d *DynamodbDataStore[T]) FetchOne(ctx context.Context, stmt storagemodels.Statement) (*T, error) {
	rows, err := d.FetchMany(ctx, stmt.WithLimit(2))
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

// FetchRaw returns the items matched by stmt as attribute maps. Columns is the sorted
// union of the attribute names, since items of a table need not share attributes.
func (d *DynamodbDataStore[T]) FetchRaw(ctx context.Context, stmt storagemodels.Statement) (datastore.RawResult, error) {
	items, next, err := d.fetchItems(ctx, stmt)
	if err != nil {
		return datastore.RawResult{}, err
	}

	raw := datastore.RawResult{Rows: make([]map[string]any, 0, len(items))}
	for _, item := range items {
		var row map[string]any
		if err := attributevalue.UnmarshalMap(item, &row); err != nil {
			return datastore.RawResult{}, fmt.Errorf("failed to unmarshal item: %w", err)
		}
		raw.Rows = append(raw.Rows, row)
	}

	raw.Columns = lo.Uniq(lo.FlatMap(raw.Rows, func(row map[string]any, _ int) []string { return lo.Keys(row) }))
	sort.Strings(raw.Columns)
	if next != nil {
		raw.PagingState = []byte(*next)
	}
	return raw, nil
}
