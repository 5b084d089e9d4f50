/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package execution

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/suparena/entityquery/errors"
	"github.com/suparena/entityquery/registry"
)

var _encoder = base64.RawURLEncoding

// Continuation is the opaque cursor of a paginated query: the identifier of the last
// row already delivered and the requested page size. The zero value of the identifier
// (nil) means the first page.
type Continuation struct {
	value    any
	pageSize int
}

// FirstPage returns a continuation requesting the first page.
func FirstPage(pageSize int) Continuation {
	return Continuation{pageSize: pageSize}
}

// ContinueAfter returns a continuation resuming strictly after the row identified by value.
func ContinueAfter(value any, pageSize int) Continuation {
	return Continuation{value: value, pageSize: pageSize}
}

// Value returns the identifier to resume after, nil for the first page.
func (c Continuation) Value() any {
	return c.value
}

// PageSize returns the requested page size.
func (c Continuation) PageSize() int {
	return c.pageSize
}

// IsFirstPage reports whether the continuation carries no identifier.
func (c Continuation) IsFirstPage() bool {
	return c.value == nil
}

// WithPageSize returns a copy of c with another page size. Keyset pagination resumes
// from the identifier alone, so the size may change between pages.
func (c Continuation) WithPageSize(pageSize int) Continuation {
	c.pageSize = pageSize
	return c
}

// String - implements fmt.Stringer. Meant for logs; use Encode for transport.
func (c Continuation) String() string {
	if c.IsFirstPage() {
		return fmt.Sprintf("first page (size %d)", c.pageSize)
	}
	return fmt.Sprintf("after %v (size %d)", c.value, c.pageSize)
}

type wireContinuation struct {
	Value    json.RawMessage `json:"v,omitempty"`
	PageSize int             `json:"s"`
}

// Encode renders the continuation as a URL-safe token that DecodeContinuation accepts.
func (c Continuation) Encode() (string, error) {
	wire := wireContinuation{PageSize: c.pageSize}
	if !c.IsFirstPage() {
		v, err := json.Marshal(c.value)
		if err != nil {
			return "", fmt.Errorf("cannot marshal continuation value: %w", err)
		}
		wire.Value = v
	}

	data, err := json.Marshal(wire)
	if err != nil {
		return "", fmt.Errorf("cannot marshal continuation: %w", err)
	}
	return _encoder.EncodeToString(data), nil
}

// DecodeContinuation parses a token produced by Continuation.Encode, decoding the
// identifier into idType. An empty token yields FirstPage(0).
func DecodeContinuation(token string, idType reflect.Type) (Continuation, error) {
	if token == "" {
		return FirstPage(0), nil
	}

	data, err := _encoder.DecodeString(token)
	if err != nil {
		return Continuation{}, errors.NewInvalidContinuationError(typeName(idType), "", fmt.Sprintf("failed to decode base64 encoded token: %v", err))
	}

	var wire wireContinuation
	if err := json.Unmarshal(data, &wire); err != nil {
		return Continuation{}, errors.NewInvalidContinuationError(typeName(idType), "", fmt.Sprintf("failed to unmarshal token: %v", err))
	}

	if len(wire.Value) == 0 || string(wire.Value) == "null" {
		return FirstPage(wire.PageSize), nil
	}
	if idType == nil {
		return Continuation{}, errors.NewUnsupportedContinuationError("<unknown>", "no identifier type to decode the token into")
	}

	ptr := reflect.New(idType)
	if err := json.Unmarshal(wire.Value, ptr.Interface()); err != nil {
		return Continuation{}, errors.NewInvalidContinuationError(typeName(idType), "", fmt.Sprintf("token value does not fit %s: %v", idType, err))
	}
	return ContinueAfter(ptr.Elem().Interface(), wire.PageSize), nil
}

// DecodeContinuationFor decodes a token for entity type T using its registered
// identifier type. A positive pageSize overrides the size carried by the token;
// an empty token yields FirstPage(pageSize).
func DecodeContinuationFor[T any](token string, pageSize int) (Continuation, error) {
	var idType reflect.Type
	if id, ok := registry.IdentifierOf[T](); ok {
		idType = id.Type
	}

	c, err := DecodeContinuation(token, idType)
	if err != nil {
		if errors.IsUnsupportedContinuation(err) {
			return Continuation{}, errors.NewUnsupportedContinuationError(registry.EntityName[T](), "no identifier column to resume from")
		}
		return Continuation{}, err
	}
	if pageSize > 0 {
		c = c.WithPageSize(pageSize)
	}
	return c, nil
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "<unknown>"
	}
	return t.String()
}

// Page is one slice of a paginated result.
type Page[T any] struct {
	// Rows holds at most the requested page size of rows, in ordering-token order.
	Rows []T
	// Next resumes after the last row when HasMore is true. On the last page it is the
	// continuation the page was requested with.
	Next Continuation
	// HasMore reports whether the store returned more rows than the page size.
	HasMore bool

	resumable bool
}

// NextPage returns the continuation for the following page. The boolean is false on
// the last page, and when the entity has no identifier to resume from.
func (p *Page[T]) NextPage() (Continuation, bool) {
	if p == nil || !p.HasMore || !p.resumable {
		return Continuation{}, false
	}
	return p.Next, true
}

// Len returns the number of rows in the page.
func (p *Page[T]) Len() int {
	if p == nil {
		return 0
	}
	return len(p.Rows)
}

// project converts every row with f, keeping the paging state.
func (p *Page[T]) project(f func(any) (any, error)) (*Page[any], error) {
	rows := make([]any, 0, len(p.Rows))
	for i, row := range p.Rows {
		v, err := f(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		rows = append(rows, v)
	}
	return &Page[any]{Rows: rows, Next: p.Next, HasMore: p.HasMore, resumable: p.resumable}, nil
}

type projectablePage interface {
	project(f func(any) (any, error)) (*Page[any], error)
}
