/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package execution

import (
	"context"
	"reflect"

	"github.com/suparena/entityquery/storagemodels"
)

// ResultProcessor projects or converts materialized results to the type a caller declared.
type ResultProcessor interface {
	// ReturnedType is the declared return type.
	ReturnedType() reflect.Type
	// ProcessResult converts source to the declared type.
	ProcessResult(source any) (any, error)
}

// Converter post-processes the output of an execution.
type Converter func(source any) (any, error)

// IsScalarLike reports whether t carries no structural mapping: booleans and numeric
// kinds (runes and bytes included), directly or behind one pointer.
func IsScalarLike(t reflect.Type) bool {
	if t == nil {
		return false
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128:
		return true
	default:
		return false
	}
}

// ProcessingConverter returns a Converter delegating to p, except for scalar-like
// declared types whose sources are passed through unchanged.
func ProcessingConverter(p ResultProcessor) Converter {
	return func(source any) (any, error) {
		if IsScalarLike(p.ReturnedType()) {
			return source, nil
		}
		return p.ProcessResult(source)
	}
}

// WithResultProcessing decorates delegate so that its output goes through convert.
// Streams are converted item by item until ctx is done. Errors from delegate are
// returned as they are.
func WithResultProcessing(delegate Executor, convert Converter) Executor {
	return ExecutorFunc(func(ctx context.Context, query string, args ...any) (any, error) {
		source, err := delegate.Execute(ctx, query, args...)
		if err != nil {
			return nil, err
		}
		if stream, ok := source.(<-chan storagemodels.StreamResult[any]); ok {
			return convertStream(ctx, stream, convert), nil
		}
		return convert(source)
	})
}
