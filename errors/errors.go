/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	// ErrInvalidPageSize is returned when a page size is zero or negative
	ErrInvalidPageSize = errors.New("invalid page size")

	// ErrUnsupportedContinuation is returned when a paginated query cannot be resumed
	// because the target type has no single-column identifier
	ErrUnsupportedContinuation = errors.New("unsupported continuation")

	// ErrInvalidContinuation is returned when a continuation value does not match the
	// identifier column it resumes from
	ErrInvalidContinuation = errors.New("invalid continuation")

	// ErrAmbiguousResult is returned when a single-entity query matched more than one row
	ErrAmbiguousResult = errors.New("ambiguous result")

	// ErrGateway is returned when the underlying store failed
	ErrGateway = errors.New("gateway failure")
)

// PageSizeError represents a rejected page size
type PageSizeError struct {
	PageSize int
}

func (e *PageSizeError) Error() string {
	return fmt.Sprintf("page size must be positive, got %d", e.PageSize)
}

func (e *PageSizeError) Is(target error) bool {
	return target == ErrInvalidPageSize
}

// ContinuationError represents a continuation that cannot be applied to a type.
// Unsupported distinguishes a type that cannot be resumed at all from a value that
// does not fit the identifier column.
type ContinuationError struct {
	Type        string
	Column      string
	Message     string
	Unsupported bool
}

func (e *ContinuationError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("continuation on %s(%s): %s", e.Type, e.Column, e.Message)
	}
	return fmt.Sprintf("continuation on %s: %s", e.Type, e.Message)
}

func (e *ContinuationError) Is(target error) bool {
	if e.Unsupported {
		return target == ErrUnsupportedContinuation
	}
	return target == ErrInvalidContinuation
}

// AmbiguousResultError represents a single-entity query that returned several rows
type AmbiguousResultError struct {
	Type  string
	Query string
}

func (e *AmbiguousResultError) Error() string {
	return fmt.Sprintf("expected at most one %s for query %q, got more", e.Type, e.Query)
}

func (e *AmbiguousResultError) Is(target error) bool {
	return target == ErrAmbiguousResult
}

// GatewayError wraps an error raised by the store driver
type GatewayError struct {
	Op  string
	Err error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

func (e *GatewayError) Is(target error) bool {
	return target == ErrGateway
}

// Helper functions for creating errors

// NewPageSizeError creates a new PageSizeError
func NewPageSizeError(pageSize int) error {
	return &PageSizeError{PageSize: pageSize}
}

// NewUnsupportedContinuationError creates a ContinuationError matching ErrUnsupportedContinuation
func NewUnsupportedContinuationError(entityType, message string) error {
	return &ContinuationError{Type: entityType, Message: message, Unsupported: true}
}

// NewInvalidContinuationError creates a ContinuationError matching ErrInvalidContinuation
func NewInvalidContinuationError(entityType, column, message string) error {
	return &ContinuationError{Type: entityType, Column: column, Message: message}
}

// NewAmbiguousResultError creates a new AmbiguousResultError
func NewAmbiguousResultError(entityType, query string) error {
	return &AmbiguousResultError{Type: entityType, Query: query}
}

// NewGatewayError creates a new GatewayError. A nil err yields nil.
func NewGatewayError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &GatewayError{Op: op, Err: err}
}

// IsInvalidPageSize checks if an error is an invalid page size error
func IsInvalidPageSize(err error) bool {
	return errors.Is(err, ErrInvalidPageSize)
}

// IsUnsupportedContinuation checks if an error is an unsupported continuation error
func IsUnsupportedContinuation(err error) bool {
	return errors.Is(err, ErrUnsupportedContinuation)
}

// IsInvalidContinuation checks if an error is an invalid continuation error
func IsInvalidContinuation(err error) bool {
	return errors.Is(err, ErrInvalidContinuation)
}

// IsAmbiguousResult checks if an error is an ambiguous result error
func IsAmbiguousResult(err error) bool {
	return errors.Is(err, ErrAmbiguousResult)
}

// IsGatewayFailure checks if an error originated in the store gateway
func IsGatewayFailure(err error) bool {
	return errors.Is(err, ErrGateway)
}
