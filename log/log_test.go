/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package log

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suparena/entityquery/trace"
)

func TestLoggerFields(t *testing.T) {
	var buf bytes.Buffer
	base := logrus.New()
	base.SetOutput(&buf)
	base.SetFormatter(&logrus.JSONFormatter{})
	base.SetLevel(logrus.DebugLevel)

	ctx := trace.InjectRequestID(context.Background(), "req-42")
	NewWithLogger(base, "entityquery").
		With(ctx).
		WithParams(Params{"page_size": 2}).
		WithParam("has_more", true).
		Debug("page fetched")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "entityquery", line["service"])
	assert.Equal(t, "req-42", line["request_id"])
	assert.Equal(t, float64(2), line["page_size"])
	assert.Equal(t, true, line["has_more"])
	assert.Equal(t, "page fetched", line["msg"])
}

func TestWithoutRequestID(t *testing.T) {
	l := Discard()
	assert.Same(t, l, l.With(context.Background()))
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, logrus.InfoLevel, lvl)

	lvl, err = ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, lvl)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}
