//go:build integration

/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package cql

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suparena/entityquery/config"
	"github.com/suparena/entityquery/datastore/testmodels"
	"github.com/suparena/entityquery/execution"
	"github.com/suparena/entityquery/storagemodels"
)

func testStore(t *testing.T) *CassandraDataStore[testmodels.RatingEvent] {
	t.Helper()
	_ = godotenv.Load()

	hosts := os.Getenv("CASSANDRA_HOSTS")
	if hosts == "" {
		t.Skip("CASSANDRA_HOSTS not set")
	}

	session, err := NewCassandraSession(config.Cassandra{
		Hosts:       strings.Split(hosts, ","),
		Keyspace:    os.Getenv("CASSANDRA_KEYSPACE"),
		Consistency: "ONE",
		Timeout:     10 * time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(session.Close)

	ctx := context.Background()
	require.NoError(t, session.Query(`CREATE TABLE IF NOT EXISTS rating_events (
		id bigint PRIMARY KEY, rating_system_id text, player_id text, rating double, created_at timestamp)`).WithContext(ctx).Exec())
	require.NoError(t, session.Query(`TRUNCATE rating_events`).WithContext(ctx).Exec())
	for id := int64(1); id <= 25; id++ {
		require.NoError(t, session.Query(`INSERT INTO rating_events (id, rating_system_id, player_id, rating, created_at) VALUES (?, ?, ?, ?, ?)`,
			id, "elo", "P1", 1500.0+float64(id), time.Now()).WithContext(ctx).Exec())
	}

	return NewCassandraDataStore[testmodels.RatingEvent](session)
}

func TestCassandra_PaginatesEveryRowOnce(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()
	stmt := storagemodels.NewStatement("SELECT * FROM rating_events")

	seen := make(map[int64]bool)
	c := execution.FirstPage(7)
	for {
		page, err := execution.ExecutePaginated[testmodels.RatingEvent](ctx, store, stmt, c)
		require.NoError(t, err)
		require.LessOrEqual(t, page.Len(), 7)
		for _, e := range page.Rows {
			assert.False(t, seen[e.ID], "row %d delivered twice", e.ID)
			seen[e.ID] = true
		}
		next, ok := page.NextPage()
		if !ok {
			break
		}
		c = next
	}
	assert.Len(t, seen, 25)
}

func TestCassandra_Stream(t *testing.T) {
	store := testStore(t)

	count := 0
	for res := range store.Stream(context.Background(), storagemodels.NewStatement("SELECT * FROM rating_events"), storagemodels.WithPageSize(10)) {
		require.NoError(t, res.Error)
		count++
	}
	assert.Equal(t, 25, count)
}

func TestCassandra_FetchOneAmbiguous(t *testing.T) {
	store := testStore(t)

	_, err := store.FetchOne(context.Background(), storagemodels.NewStatement("SELECT * FROM rating_events"))
	assert.Error(t, err)
}
