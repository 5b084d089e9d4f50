/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package cql

import (
	"fmt"
	"reflect"

	"github.com/mitchellh/mapstructure"
)

// DefaultTagName is the struct tag naming the column a field is read from.
const DefaultTagName = "cql"

// convertibleHook converts between struct types sharing an underlying type, such as
// time.Time and strfmt.DateTime.
func convertibleHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from == to || from.Kind() != reflect.Struct || to.Kind() != reflect.Struct {
		return data, nil
	}
	if !from.ConvertibleTo(to) {
		return data, nil
	}
	return reflect.ValueOf(data).Convert(to).Interface(), nil
}

// decodeRow decodes a MapScan row into a T.
func decodeRow[T any](row map[string]any, tagName string) (T, error) {
	var out T
	if m, ok := any(&out).(*map[string]any); ok {
		*m = row
		return out, nil
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:    tagName,
		Result:     &out,
		DecodeHook: convertibleHook,
	})
	if err != nil {
		return out, fmt.Errorf("cannot init decoder: %w", err)
	}
	if err := dec.Decode(row); err != nil {
		return out, fmt.Errorf("failed to decode row into %T: %w", out, err)
	}
	return out, nil
}
