/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package trace carries a request id through a context so that every log line
// emitted for one repository call can be correlated.
package trace

import (
	"context"

	"github.com/oklog/ulid/v2"
)

type contextKey int

const (
	RequestIDKey contextKey = iota
)

// InjectRequestID returns a context which knows the request ID
func InjectRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

// EnsureRequestID returns ctx unchanged when it already carries a request ID,
// otherwise a child context with a freshly generated one.
func EnsureRequestID(ctx context.Context) context.Context {
	if GetRequestIDFromContext(ctx) != "" {
		return ctx
	}
	return InjectRequestID(ctx, GenerateRequestID())
}

// GetRequestIDFromContext returns the request ID from the given context.
// If the context does not contain the request ID, it will return an empty string.
func GetRequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(RequestIDKey).(string); ok {
		return id
	}
	return ""
}

// GenerateRequestID generates a new, lexicographically sortable request ID
func GenerateRequestID() string {
	return ulid.Make().String()
}
