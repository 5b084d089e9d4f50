/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suparena/entityquery/config"
	"github.com/suparena/entityquery/registry"
)

func TestRegisterRow(t *testing.T) {
	t.Cleanup(registry.Unregister[Row])

	require.NoError(t, registerRow("event_id", "int"))
	id, ok := registry.IdentifierOf[Row]()
	require.True(t, ok)
	assert.Equal(t, "event_id", id.Column())
	assert.Equal(t, int64(7), id.Read(Row{"event_id": float64(7)}))
	assert.Equal(t, int64(8), id.Read(Row{"event_id": int32(8)}))

	require.NoError(t, registerRow("id", "string"))
	id, _ = registry.IdentifierOf[Row]()
	assert.Equal(t, "ann", id.Read(Row{"id": "ann"}))

	assert.Error(t, registerRow("id", "uuid"))
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := newLogger(config.Log{Level: "debug"}, &buf)
	require.NoError(t, err)

	logger.WithParam("rows", 3).Debug("page fetched")
	assert.Contains(t, buf.String(), "page fetched")
	assert.Contains(t, buf.String(), "service=entityquery")

	_, err = newLogger(config.Log{Level: "loud"}, &buf)
	assert.Error(t, err)
}

func TestOpenGateway_Validation(t *testing.T) {
	_, _, _, err := openGateway(context.Background(), &config.Config{Store: config.Store{Type: config.StoreCassandra}}, nil, "")
	assert.ErrorContains(t, err, "-query is required")

	_, _, _, err = openGateway(context.Background(), &config.Config{Store: config.Store{Type: "redis"}}, nil, "SELECT 1")
	assert.ErrorContains(t, err, "unknown store type")
}
