/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package cql

import (
	"fmt"
	"strings"

	gocql "github.com/apache/cassandra-gocql-driver/v2"
	"github.com/suparena/entityquery/config"
	"github.com/suparena/entityquery/datastore"
	"github.com/suparena/entityquery/log"
)

// CassandraDataStore implements datastore.Gateway[T] on top of a gocql session.
// Rows are read with MapScan and decoded into T through the "cql" struct tags.
type CassandraDataStore[T any] struct {
	session *gocql.Session
	logger  log.Logger
	tagName string
}

var _ datastore.Gateway[struct{}] = (*CassandraDataStore[struct{}])(nil)

// NewCassandraSession opens a session on the cluster described by cfg.
func NewCassandraSession(cfg config.Cassandra) (*gocql.Session, error) {
	if len(cfg.Hosts) == 0 {
		return nil, fmt.Errorf("no cassandra hosts configured")
	}

	cluster := gocql.NewCluster(cfg.Hosts...)
	cluster.Keyspace = cfg.Keyspace
	if cfg.Timeout > 0 {
		cluster.Timeout = cfg.Timeout
	}
	if cfg.PageSize > 0 {
		cluster.PageSize = cfg.PageSize
	}
	if cfg.Consistency != "" {
		var consistency gocql.Consistency
		if err := consistency.UnmarshalText([]byte(strings.ToUpper(cfg.Consistency))); err != nil {
			return nil, fmt.Errorf("invalid consistency %q: %w", cfg.Consistency, err)
		}
		cluster.Consistency = consistency
	}
	if cfg.Username != "" {
		cluster.Authenticator = gocql.PasswordAuthenticator{
			Username: cfg.Username,
			Password: cfg.Password,
		}
	}

	session, err := cluster.CreateSession()
	if err != nil {
		return nil, fmt.Errorf("failed to create cassandra session: %w", err)
	}
	return session, nil
}

// NewCassandraDataStore constructs a CassandraDataStore for type T over session.
func NewCassandraDataStore[T any](session *gocql.Session) *CassandraDataStore[T] {
	return &CassandraDataStore[T]{
		session: session,
		logger:  log.Discard(),
		tagName: DefaultTagName,
	}
}

// WithLogger sets the logger statements are traced with
func (c *CassandraDataStore[T]) WithLogger(l log.Logger) *CassandraDataStore[T] {
	c.logger = l
	return c
}

// WithTagName sets the struct tag matched against column names
func (c *CassandraDataStore[T]) WithTagName(name string) *CassandraDataStore[T] {
	c.tagName = name
	return c
}
