/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package execution

import (
	"context"
	"fmt"

	"github.com/suparena/entityquery/datastore"
	"github.com/suparena/entityquery/log"
	"github.com/suparena/entityquery/storagemodels"
)

// Kind identifies the result shape an Execution produces.
type Kind int

const (
	KindStream Kind = iota + 1
	KindCollection
	KindSingleEntity
	KindRawResult
	KindPaginated
)

func (k Kind) String() string {
	switch k {
	case KindStream:
		return "stream"
	case KindCollection:
		return "collection"
	case KindSingleEntity:
		return "single-entity"
	case KindRawResult:
		return "raw-result"
	case KindPaginated:
		return "paginated"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Executor turns a query into a caller-shaped result.
type Executor interface {
	Execute(ctx context.Context, query string, args ...any) (any, error)
}

// ExecutorFunc adapts a function to the Executor interface.
type ExecutorFunc func(ctx context.Context, query string, args ...any) (any, error)

// Execute calls f.
func (f ExecutorFunc) Execute(ctx context.Context, query string, args ...any) (any, error) {
	return f(ctx, query, args...)
}

// Execution is the closed set of execution strategies over a gateway. Each value is one
// variant, selected by its constructor; the zero value is not usable.
//
// Execute returns, per kind:
//
//	KindStream       <-chan storagemodels.StreamResult[any]
//	KindCollection   []T
//	KindSingleEntity *T, or nil when nothing matched
//	KindRawResult    datastore.RawResult
//	KindPaginated    *Page[T]
type Execution[T any] struct {
	kind         Kind
	gateway      datastore.Gateway[T]
	continuation Continuation
	converter    Converter
	streamOpts   []storagemodels.StreamOption
	logger       log.Logger
}

var _ Executor = Execution[struct{}]{}

// Stream returns the lazy-sequence variant. convert, when not nil, is applied to every
// streamed row.
func Stream[T any](gw datastore.Gateway[T], convert Converter, opts ...storagemodels.StreamOption) Execution[T] {
	return Execution[T]{kind: KindStream, gateway: gw, converter: convert, streamOpts: opts}
}

// Collection returns the eagerly materialized collection variant.
func Collection[T any](gw datastore.Gateway[T]) Execution[T] {
	return Execution[T]{kind: KindCollection, gateway: gw}
}

// SingleEntity returns the single record variant.
func SingleEntity[T any](gw datastore.Gateway[T]) Execution[T] {
	return Execution[T]{kind: KindSingleEntity, gateway: gw}
}

// RawResult returns the variant handing back the gateway's unmapped result.
func RawResult[T any](gw datastore.Gateway[T]) Execution[T] {
	return Execution[T]{kind: KindRawResult, gateway: gw}
}

// Paginated returns the keyset pagination variant for the page described by c.
func Paginated[T any](gw datastore.Gateway[T], c Continuation) Execution[T] {
	return Execution[T]{kind: KindPaginated, gateway: gw, continuation: c}
}

// Kind returns the variant of e.
func (e Execution[T]) Kind() Kind {
	return e.kind
}

// WithLogger returns a copy of e logging through l.
func (e Execution[T]) WithLogger(l log.Logger) Execution[T] {
	e.logger = l
	return e
}

// Execute runs query with args through the variant's strategy.
func (e Execution[T]) Execute(ctx context.Context, query string, args ...any) (any, error) {
	if e.gateway == nil {
		return nil, fmt.Errorf("%s execution has no gateway", e.kind)
	}

	logger := e.logger
	if logger == nil {
		logger = log.Discard()
	}
	logger = logger.With(ctx).WithParam("execution", e.kind.String())

	stmt := storagemodels.NewStatement(query, args...)
	switch e.kind {
	case KindStream:
		logger.Debug("opening stream")
		return convertStream(ctx, ExecuteStream(ctx, e.gateway, stmt, e.streamOpts...), e.converter), nil

	case KindCollection:
		rows, err := ExecuteCollection(ctx, e.gateway, stmt)
		if err != nil {
			logger.WithError(err).Debug("collection query failed")
			return nil, err
		}
		logger.WithParam("rows", len(rows)).Debug("collection fetched")
		return rows, nil

	case KindSingleEntity:
		entity, err := ExecuteSingle(ctx, e.gateway, stmt)
		if err != nil {
			logger.WithError(err).Debug("single entity query failed")
			return nil, err
		}
		if entity == nil {
			logger.Debug("no entity matched")
			return nil, nil
		}
		return entity, nil

	case KindRawResult:
		raw, err := ExecuteRaw(ctx, e.gateway, stmt)
		if err != nil {
			logger.WithError(err).Debug("raw query failed")
			return nil, err
		}
		return raw, nil

	case KindPaginated:
		page, err := ExecutePaginated(ctx, e.gateway, stmt, e.continuation)
		if err != nil {
			logger.WithError(err).WithParam("continuation", e.continuation.String()).Debug("page query failed")
			return nil, err
		}
		logger.WithParams(log.Params{
			"page_size": e.continuation.PageSize(),
			"rows":      page.Len(),
			"has_more":  page.HasMore,
		}).Debug("page fetched")
		return page, nil

	default:
		return nil, fmt.Errorf("unknown execution kind %s", e.kind)
	}
}

// ExecuteStream opens a lazy, single-consumer sequence over the rows matched by stmt.
// Every call issues a new query.
func ExecuteStream[T any](ctx context.Context, gw datastore.Gateway[T], stmt storagemodels.Statement, opts ...storagemodels.StreamOption) <-chan storagemodels.StreamResult[T] {
	return gw.Stream(ctx, stmt, opts...)
}

// ExecuteCollection fetches every row matched by stmt.
func ExecuteCollection[T any](ctx context.Context, gw datastore.Gateway[T], stmt storagemodels.Statement) ([]T, error) {
	rows, err := gw.FetchMany(ctx, stmt)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []T{}
	}
	return rows, nil
}

// ExecuteSingle fetches the single row matched by stmt, nil when nothing matched.
// More than one row is reported by the gateway as an ambiguous result.
func ExecuteSingle[T any](ctx context.Context, gw datastore.Gateway[T], stmt storagemodels.Statement) (*T, error) {
	return gw.FetchOne(ctx, stmt)
}

// ExecuteRaw returns the gateway's unmapped result for stmt.
func ExecuteRaw[T any](ctx context.Context, gw datastore.Gateway[T], stmt storagemodels.Statement) (datastore.RawResult, error) {
	return gw.FetchRaw(ctx, stmt)
}

// convertStream re-emits a typed stream as a stream of any, applying convert to each
// item. Conversion failures are delivered as item errors.
func convertStream[T any](ctx context.Context, in <-chan storagemodels.StreamResult[T], convert Converter) <-chan storagemodels.StreamResult[any] {
	out := make(chan storagemodels.StreamResult[any], cap(in))

	go func() {
		defer close(out)
		for res := range in {
			item := storagemodels.StreamResult[any]{Error: res.Error, Meta: res.Meta}
			if res.Error == nil {
				item.Item = any(res.Item)
				if convert != nil {
					converted, err := convert(item.Item)
					if err != nil {
						item.Item = nil
						item.Error = fmt.Errorf("failed to convert streamed item %d: %w", res.Meta.Index, err)
					} else {
						item.Item = converted
					}
				}
			}

			select {
			case <-ctx.Done():
				return
			case out <- item:
			}
		}
	}()

	return out
}
