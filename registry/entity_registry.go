/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"fmt"
	"reflect"
	"sync"
)

// Identifier describes the identifier column(s) of an entity and how to read the
// identifier value off a materialized row.
type Identifier[T any] struct {
	// Columns lists the identifier columns. More than one column is a composite identifier.
	Columns []string
	// Type is the Go type of the identifier value.
	Type reflect.Type
	// Read extracts the identifier value from a row.
	Read func(row T) any
}

// Column returns the identifier column, or "" for a composite identifier.
func (id *Identifier[T]) Column() string {
	if id == nil || len(id.Columns) != 1 {
		return ""
	}
	return id.Columns[0]
}

// Composite reports whether the identifier spans several columns.
func (id *Identifier[T]) Composite() bool {
	return id != nil && len(id.Columns) > 1
}

// Entity is the mapping metadata registered for a Go type.
type Entity[T any] struct {
	// Name is the logical entity name used in errors and logs. Defaults to the Go type name.
	Name string
	// Table is the table the entity is stored in.
	Table string
	// ID is nil for entities without an identifier column.
	ID *Identifier[T]
}

// SingleColumn builds a single-column Identifier whose value type is K.
func SingleColumn[T any, K any](column string, read func(T) K) *Identifier[T] {
	return &Identifier[T]{
		Columns: []string{column},
		Type:    reflect.TypeOf((*K)(nil)).Elem(),
		Read:    func(row T) any { return read(row) },
	}
}

var (
	entityRegistry = make(map[reflect.Type]any)
	mu             sync.RWMutex
)

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// RegisterEntity associates a Go type T with its mapping metadata. A later call for
// the same type replaces the earlier registration.
func RegisterEntity[T any](e Entity[T]) {
	t := typeOf[T]()
	if e.Name == "" {
		e.Name = t.String()
	}

	mu.Lock()
	defer mu.Unlock()
	entityRegistry[t] = e
}

// Unregister removes the metadata registered for T, if any.
func Unregister[T any]() {
	mu.Lock()
	defer mu.Unlock()
	delete(entityRegistry, typeOf[T]())
}

// Lookup retrieves the metadata for type T, if any.
func Lookup[T any]() (Entity[T], bool) {
	mu.RLock()
	defer mu.RUnlock()
	e, ok := entityRegistry[typeOf[T]()]
	if !ok {
		return Entity[T]{}, false
	}
	return e.(Entity[T]), true
}

// IdentifierOf returns the identifier descriptor for T. The boolean is false when T is
// not registered or has no identifier column.
func IdentifierOf[T any]() (*Identifier[T], bool) {
	e, ok := Lookup[T]()
	if !ok || e.ID == nil || len(e.ID.Columns) == 0 {
		return nil, false
	}
	return e.ID, true
}

// EntityName returns the registered name of T, or its Go type name.
func EntityName[T any]() string {
	if e, ok := Lookup[T](); ok {
		return e.Name
	}
	return typeOf[T]().String()
}

// ReadIdentifier reads the identifier of row through the registered accessor.
func ReadIdentifier[T any](row T) (any, error) {
	id, ok := IdentifierOf[T]()
	if !ok || id.Read == nil {
		return nil, fmt.Errorf("no identifier accessor registered for %s", EntityName[T]())
	}
	return id.Read(row), nil
}
