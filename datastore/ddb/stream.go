/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/suparena/entityquery/errors"
	"github.com/suparena/entityquery/storagemodels"
)

// Stream pages through the items matched by stmt with configurable options
func (d *DynamodbDataStore[T]) Stream(ctx context.Context, stmt storagemodels.Statement, opts ...storagemodels.StreamOption) <-chan storagemodels.StreamResult[T] {
	options := storagemodels.ApplyStreamOptions(opts...)

	// Create buffered result channel
	resultCh := make(chan storagemodels.StreamResult[T], options.BufferSize)

	// Start streaming in background
	go d.streamWorker(ctx, stmt, options, resultCh)

	return resultCh
}

// streamWorker handles the actual streaming logic
func (d *DynamodbDataStore[T]) streamWorker(
	ctx context.Context,
	stmt storagemodels.Statement,
	options storagemodels.StreamOptions,
	resultCh chan<- storagemodels.StreamResult[T],
) {
	defer close(resultCh)

	var itemIndex int64
	var pageNumber int
	startTime := time.Now()

	send := func(result storagemodels.StreamResult[T]) bool {
		select {
		case <-ctx.Done():
			return false
		case resultCh <- result:
			return true
		}
	}
	fail := func(err error) {
		send(storagemodels.StreamResult[T]{
			Error: err,
			Meta: storagemodels.StreamMeta{
				Index:      itemIndex,
				PageNumber: pageNumber,
				Timestamp:  time.Now(),
			},
		})
	}

	input, err := d.input(ctx, stmt)
	if err != nil {
		fail(err)
		return
	}
	if options.PageSize > 0 {
		input.Limit = aws.Int32(options.PageSize)
	}

	for {
		// Check context cancellation
		if ctx.Err() != nil {
			return
		}

		out, err := d.client.ExecuteStatement(ctx, input)
		if err != nil {
			fail(errors.NewGatewayError("ExecuteStatement", err))
			return
		}
		pageNumber++

		// Process items in current page
		for _, item := range out.Items {
			if !send(d.processItem(item, itemIndex, pageNumber)) {
				return
			}
			itemIndex++
		}

		// Report progress after each page
		options.ReportProgress(itemIndex, pageNumber, startTime)

		// Check for more pages
		if aws.ToString(out.NextToken) == "" {
			return
		}
		input.NextToken = out.NextToken
	}
}

// processItem converts a DynamoDB item to a typed result
func (d *DynamodbDataStore[T]) processItem(item map[string]types.AttributeValue, index int64, pageNumber int) storagemodels.StreamResult[T] {
	result := storagemodels.StreamResult[T]{
		Meta: storagemodels.StreamMeta{
			Index:      index,
			PageNumber: pageNumber,
			Timestamp:  time.Now(),
		},
	}
	if err := attributevalue.UnmarshalMap(item, &result.Item); err != nil {
		result.Error = fmt.Errorf("failed to unmarshal item to type %T: %w", result.Item, err)
	}
	return result
}
