/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package log is a thin logrus wrapper shared by executions and gateways.
package log

import (
	"context"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/suparena/entityquery/trace"
)

// Logger represent common interface for logging function
type Logger interface {
	With(ctx context.Context) Logger
	WithError(err error) Logger
	WithParam(key string, value interface{}) Logger
	WithParams(params Params) Logger
	Errorf(format string, args ...interface{})
	Error(args ...interface{})
	Infof(format string, args ...interface{})
	Info(args ...interface{})
	Warnf(format string, args ...interface{})
	Warn(args ...interface{})
	Debugf(format string, args ...interface{})
	Debug(args ...interface{})
}

// Params type, used to pass to `WithParams`.
type Params map[string]interface{}

type logger struct {
	*logrus.Entry
}

// New returns a new wrapper log tagged with the given service name
func New(serviceName string) Logger {
	return NewWithLogger(logrus.New(), serviceName)
}

// NewWithLogger wraps an existing logrus logger, so that callers control output,
// formatter and level.
func NewWithLogger(base *logrus.Logger, serviceName string) Logger {
	return &logger{base.WithFields(logrus.Fields{"service": serviceName})}
}

// Discard returns a logger that drops everything.
func Discard() Logger {
	base := logrus.New()
	base.SetOutput(io.Discard)
	base.SetLevel(logrus.PanicLevel)
	return &logger{logrus.NewEntry(base)}
}

// ParseLevel converts a level name ("debug", "info", ...) to a logrus level,
// falling back to info for an empty name.
func ParseLevel(name string) (logrus.Level, error) {
	if name == "" {
		return logrus.InfoLevel, nil
	}
	return logrus.ParseLevel(name)
}

// With reads requestId from context and adds to log field
func (l *logger) With(ctx context.Context) Logger {
	if id := trace.GetRequestIDFromContext(ctx); id != "" {
		return &logger{l.WithField("request_id", id)}
	}
	return l
}

// WithError adds the error to log field
func (l *logger) WithError(err error) Logger {
	return &logger{l.Entry.WithError(err)}
}

// WithParam adds key value to log field
func (l *logger) WithParam(key string, value interface{}) Logger {
	return &logger{l.WithField(key, value)}
}

// WithParams adds params to log field
func (l *logger) WithParams(params Params) Logger {
	return &logger{l.WithFields(logrus.Fields(params))}
}
