/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package execution

import (
	"fmt"
	"reflect"

	"github.com/mitchellh/mapstructure"
	"github.com/suparena/entityquery/datastore"
)

// DefaultTagName is the struct tag the Projector matches fields by.
const DefaultTagName = "json"

// Projector is a ResultProcessor that copies matching fields of materialized rows onto
// a declared type. It understands single rows, slices, pages, raw results and streams.
type Projector struct {
	target  reflect.Type
	tagName string
}

var _ ResultProcessor = (*Projector)(nil)

// NewProjector returns a Projector onto target.
func NewProjector(target reflect.Type) *Projector {
	return &Projector{target: target, tagName: DefaultTagName}
}

// ProjectorFor returns a Projector onto R.
func ProjectorFor[R any]() *Projector {
	return NewProjector(reflect.TypeOf((*R)(nil)).Elem())
}

// WithTagName sets the struct tag used to match fields.
func (p *Projector) WithTagName(name string) *Projector {
	p.tagName = name
	return p
}

// ReturnedType - implements ResultProcessor.
func (p *Projector) ReturnedType() reflect.Type {
	return p.target
}

// ProcessResult - implements ResultProcessor. Slices come back as slices of the target
// type, pages as *Page[any] and raw results as a slice of the target type. Streams are
// projected row by row through ProcessingConverter, see WithResultProcessing.
func (p *Projector) ProcessResult(source any) (any, error) {
	switch src := source.(type) {
	case nil:
		return nil, nil
	case projectablePage:
		return src.project(p.projectOne)
	case datastore.RawResult:
		return p.projectSlice(reflect.ValueOf(src.Rows))
	}

	v := reflect.ValueOf(source)
	if v.Kind() == reflect.Slice && p.target.Kind() != reflect.Slice {
		if v.Type().Elem() == p.target {
			return source, nil
		}
		return p.projectSlice(v)
	}
	return p.projectOne(source)
}

func (p *Projector) projectOne(source any) (any, error) {
	if source == nil {
		return nil, nil
	}
	if reflect.TypeOf(source) == p.target {
		return source, nil
	}

	out := reflect.New(p.target)
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: p.tagName,
		Result:  out.Interface(),
	})
	if err != nil {
		return nil, fmt.Errorf("cannot init decoder: %w", err)
	}
	if err := dec.Decode(source); err != nil {
		return nil, fmt.Errorf("cannot project %T onto %s: %w", source, p.target, err)
	}
	return out.Elem().Interface(), nil
}

func (p *Projector) projectSlice(v reflect.Value) (any, error) {
	out := reflect.MakeSlice(reflect.SliceOf(p.target), 0, v.Len())
	for i := 0; i < v.Len(); i++ {
		projected, err := p.projectOne(v.Index(i).Interface())
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		if projected == nil {
			out = reflect.Append(out, reflect.Zero(p.target))
			continue
		}
		out = reflect.Append(out, reflect.ValueOf(projected))
	}
	return out.Interface(), nil
}
