/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package cql

import (
	"context"
	"time"

	"github.com/suparena/entityquery/errors"
	"github.com/suparena/entityquery/log"
	"github.com/suparena/entityquery/storagemodels"
)

// Stream pages through the rows matched by stmt, one round trip per page, carrying the
// driver's paging state from one page to the next.
func (c *CassandraDataStore[T]) Stream(ctx context.Context, stmt storagemodels.Statement, opts ...storagemodels.StreamOption) <-chan storagemodels.StreamResult[T] {
	options := storagemodels.ApplyStreamOptions(opts...)
	resultCh := make(chan storagemodels.StreamResult[T], options.BufferSize)

	go c.streamWorker(ctx, stmt, options, resultCh)

	return resultCh
}

// streamWorker handles the actual streaming logic
func (c *CassandraDataStore[T]) streamWorker(
	ctx context.Context,
	stmt storagemodels.Statement,
	options storagemodels.StreamOptions,
	resultCh chan<- storagemodels.StreamResult[T],
) {
	defer close(resultCh)

	query, args := Render(stmt)
	logger := c.logger.With(ctx).WithParam("query", query)

	var itemIndex int64
	var pageNumber int
	var pageState []byte
	startTime := time.Now()

	send := func(result storagemodels.StreamResult[T]) bool {
		select {
		case <-ctx.Done():
			return false
		case resultCh <- result:
			return true
		}
	}

	for {
		if ctx.Err() != nil {
			return
		}

		q := c.session.Query(query, args...).WithContext(ctx).PageState(pageState)
		if options.PageSize > 0 {
			q = q.PageSize(int(options.PageSize))
		}
		iter := q.Iter()
		nextState := iter.PageState()
		pageNumber++

		for {
			row := make(map[string]any)
			if !iter.MapScan(row) {
				break
			}
			meta := storagemodels.StreamMeta{Index: itemIndex, PageNumber: pageNumber, Timestamp: time.Now()}
			item, err := decodeRow[T](row, c.tagName)
			itemIndex++
			if !send(storagemodels.StreamResult[T]{Item: item, Error: err, Meta: meta}) {
				_ = iter.Close()
				return
			}
		}

		if err := iter.Close(); err != nil {
			logger.WithError(err).Debug("stream page failed")
			send(storagemodels.StreamResult[T]{
				Error: errors.NewGatewayError("Query", err),
				Meta:  storagemodels.StreamMeta{Index: itemIndex, PageNumber: pageNumber, Timestamp: time.Now()},
			})
			return
		}

		options.ReportProgress(itemIndex, pageNumber, startTime)
		if len(nextState) == 0 {
			break
		}
		pageState = nextState
	}

	logger.WithParams(log.Params{"items": itemIndex, "pages": pageNumber}).Debug("stream completed")
}
