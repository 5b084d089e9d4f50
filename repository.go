/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package entityquery

import (
	"context"
	"fmt"

	"github.com/suparena/entityquery/config"
	"github.com/suparena/entityquery/datastore"
	"github.com/suparena/entityquery/errors"
	"github.com/suparena/entityquery/execution"
	"github.com/suparena/entityquery/log"
	"github.com/suparena/entityquery/storagemodels"
	"github.com/suparena/entityquery/trace"
)

// Repository binds a gateway for entity type T to the execution strategies. Every call
// runs with a request id in its context so that its log lines can be correlated.
type Repository[T any] struct {
	gateway    datastore.Gateway[T]
	logger     log.Logger
	pagination config.Pagination
}

// RepositoryOption configures a Repository
type RepositoryOption func(*repositoryOptions)

type repositoryOptions struct {
	logger     log.Logger
	pagination config.Pagination
}

// WithLogger sets the logger executions log through
func WithLogger(l log.Logger) RepositoryOption {
	return func(o *repositoryOptions) {
		o.logger = l
	}
}

// WithPagination sets the default and maximum page sizes
func WithPagination(p config.Pagination) RepositoryOption {
	return func(o *repositoryOptions) {
		o.pagination = p
	}
}

// NewRepository creates a Repository over gw
func NewRepository[T any](gw datastore.Gateway[T], opts ...RepositoryOption) *Repository[T] {
	options := repositoryOptions{
		logger: log.Discard(),
		pagination: config.Pagination{
			DefaultPageSize: config.DefaultPageSize,
			MaxPageSize:     config.DefaultMaxPageSize,
		},
	}
	for _, opt := range opts {
		opt(&options)
	}

	return &Repository[T]{
		gateway:    gw,
		logger:     options.logger,
		pagination: options.pagination,
	}
}

// Gateway returns the gateway the repository executes against
func (r *Repository[T]) Gateway() datastore.Gateway[T] {
	return r.gateway
}

// FindAll returns every row matched by query
func (r *Repository[T]) FindAll(ctx context.Context, query string, args ...any) ([]T, error) {
	result, err := r.Execution(execution.KindCollection, execution.Continuation{}).Execute(trace.EnsureRequestID(ctx), query, args...)
	if err != nil {
		return nil, err
	}
	return result.([]T), nil
}

// FindOne returns the row matched by query, nil when nothing matched. More than one
// matching row is an ambiguous result.
func (r *Repository[T]) FindOne(ctx context.Context, query string, args ...any) (*T, error) {
	result, err := r.Execution(execution.KindSingleEntity, execution.Continuation{}).Execute(trace.EnsureRequestID(ctx), query, args...)
	if err != nil || result == nil {
		return nil, err
	}
	return result.(*T), nil
}

// Stream lazily iterates over the rows matched by stmt. Each call issues a new query.
func (r *Repository[T]) Stream(ctx context.Context, stmt storagemodels.Statement, opts ...storagemodels.StreamOption) <-chan storagemodels.StreamResult[T] {
	ctx = trace.EnsureRequestID(ctx)
	r.logger.With(ctx).WithParam("query", stmt.Query).Debug("opening stream")
	return execution.ExecuteStream(ctx, r.gateway, stmt, opts...)
}

// Raw returns the store's unmapped result for query
func (r *Repository[T]) Raw(ctx context.Context, query string, args ...any) (datastore.RawResult, error) {
	result, err := r.Execution(execution.KindRawResult, execution.Continuation{}).Execute(trace.EnsureRequestID(ctx), query, args...)
	if err != nil {
		return datastore.RawResult{}, err
	}
	return result.(datastore.RawResult), nil
}

// Slice returns the page of query described by c. Page sizes above the configured
// maximum are lowered to it.
func (r *Repository[T]) Slice(ctx context.Context, c execution.Continuation, query string, args ...any) (*execution.Page[T], error) {
	if size := r.pagination.Cap(c.PageSize()); size != c.PageSize() {
		c = c.WithPageSize(size)
	}

	result, err := r.Execution(execution.KindPaginated, c).Execute(trace.EnsureRequestID(ctx), query, args...)
	if err != nil {
		return nil, err
	}
	return result.(*execution.Page[T]), nil
}

// Page decodes an encoded continuation token and returns the page it describes. An
// empty token requests the first page. A pageSize of zero keeps the size carried by the
// token, falling back to the configured default. A negative pageSize is rejected.
func (r *Repository[T]) Page(ctx context.Context, token string, pageSize int, query string, args ...any) (*execution.Page[T], error) {
	if pageSize < 0 {
		return nil, errors.NewPageSizeError(pageSize)
	}
	c, err := execution.DecodeContinuationFor[T](token, pageSize)
	if err != nil {
		return nil, err
	}
	if pageSize == 0 && c.PageSize() == 0 {
		c = c.WithPageSize(r.pagination.DefaultPageSize)
	}
	return r.Slice(ctx, c, query, args...)
}

// Execution returns the execution strategy of the given kind over the repository's
// gateway. c is only used by the paginated kind.
func (r *Repository[T]) Execution(kind execution.Kind, c execution.Continuation) execution.Executor {
	return r.execution(kind, c, nil)
}

func (r *Repository[T]) execution(kind execution.Kind, c execution.Continuation, convert execution.Converter) execution.Executor {
	var exec execution.Execution[T]
	switch kind {
	case execution.KindStream:
		exec = execution.Stream[T](r.gateway, convert)
	case execution.KindCollection:
		exec = execution.Collection[T](r.gateway)
	case execution.KindSingleEntity:
		exec = execution.SingleEntity[T](r.gateway)
	case execution.KindRawResult:
		exec = execution.RawResult[T](r.gateway)
	case execution.KindPaginated:
		exec = execution.Paginated[T](r.gateway, c)
	default:
		return execution.ExecutorFunc(func(context.Context, string, ...any) (any, error) {
			return nil, fmt.Errorf("unknown execution kind %s", kind)
		})
	}
	return exec.WithLogger(r.logger)
}

// Query returns the execution of the given kind with its output post-processed by p.
// Streamed rows are processed one at a time. Results whose declared type is scalar-like
// are passed through unchanged.
func (r *Repository[T]) Query(kind execution.Kind, c execution.Continuation, p execution.ResultProcessor) execution.Executor {
	if p == nil {
		return r.Execution(kind, c)
	}
	convert := execution.ProcessingConverter(p)
	if kind == execution.KindStream {
		return r.execution(kind, c, convert)
	}
	return execution.WithResultProcessing(r.Execution(kind, c), convert)
}
