//go:build integration

/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"os"
	"testing"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/require"
	"github.com/suparena/entityquery/config"
	"github.com/suparena/entityquery/datastore/testmodels"
	"github.com/suparena/entityquery/execution"
)

func getRatingEventStore(t *testing.T) *DynamodbDataStore[testmodels.RatingEvent] {
	t.Helper()
	if err := godotenv.Load(); err != nil {
		t.Log("No .env file found, proceeding with environment variables")
	}

	table := os.Getenv("AWS_DDB_TABLE")
	if table == "" {
		t.Skip("AWS_DDB_TABLE not set")
	}

	client, err := NewDynamoDBClient(context.Background(), config.DynamoDB{
		Region:    os.Getenv("AWS_REGION"),
		AccessKey: os.Getenv("AWS_ACCESS_KEY"),
		SecretKey: os.Getenv("AWS_SECRET_KEY"),
		Endpoint:  os.Getenv("AWS_DDB_ENDPOINT"),
	})
	require.NoError(t, err)
	return NewDynamodbDataStore[testmodels.RatingEvent](client, table)
}

func TestDynamoDB_Paginate(t *testing.T) {
	store := getRatingEventStore(t)
	ctx := context.Background()
	stmt := store.SelectAll()

	seen := make(map[int64]bool)
	c := execution.FirstPage(10)
	for {
		page, err := execution.ExecutePaginated[testmodels.RatingEvent](ctx, store, stmt, c)
		require.NoError(t, err)
		for _, e := range page.Rows {
			require.False(t, seen[e.ID], "item %d delivered twice", e.ID)
			seen[e.ID] = true
		}
		next, ok := page.NextPage()
		if !ok {
			break
		}
		c = next
	}
	t.Logf("paged through %d items", len(seen))
}
