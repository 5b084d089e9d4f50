/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package entityquery

import (
	"context"
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suparena/entityquery/config"
	"github.com/suparena/entityquery/datastore"
	"github.com/suparena/entityquery/datastore/mock"
	"github.com/suparena/entityquery/datastore/testmodels"
	"github.com/suparena/entityquery/errors"
	"github.com/suparena/entityquery/execution"
	"github.com/suparena/entityquery/storagemodels"
	"github.com/suparena/entityquery/trace"
	"go.uber.org/mock/gomock"
)

func eventStore(ids ...int64) *mock.DataStore[testmodels.RatingEvent] {
	events := make([]testmodels.RatingEvent, 0, len(ids))
	for _, id := range ids {
		events = append(events, testmodels.RatingEvent{ID: id, PlayerID: "P1", Rating: float64(1500 + id)})
	}
	return mock.New[testmodels.RatingEvent]().WithRows(events...)
}

func TestRepository_FindAll(t *testing.T) {
	repo := NewRepository[testmodels.RatingEvent](eventStore(3, 1, 2))

	rows, err := repo.FindAll(context.Background(), "SELECT * FROM rating_events")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, int64(1), rows[0].ID)
}

func TestRepository_FindOne(t *testing.T) {
	ctx := context.Background()
	store := eventStore(1, 2).WithFilter(func(stmt storagemodels.Statement, e testmodels.RatingEvent) bool {
		return len(stmt.Args) == 0 || stmt.Args[0] == e.ID
	})
	repo := NewRepository[testmodels.RatingEvent](store)

	event, err := repo.FindOne(ctx, "SELECT * FROM rating_events WHERE id = ?", int64(2))
	require.NoError(t, err)
	require.NotNil(t, event)
	assert.Equal(t, int64(2), event.ID)

	event, err = repo.FindOne(ctx, "SELECT * FROM rating_events WHERE id = ?", int64(9))
	require.NoError(t, err)
	assert.Nil(t, event)

	_, err = repo.FindOne(ctx, "SELECT * FROM rating_events")
	assert.True(t, errors.IsAmbiguousResult(err))
}

func TestRepository_Raw(t *testing.T) {
	repo := NewRepository[testmodels.RatingEvent](eventStore(1))

	raw, err := repo.Raw(context.Background(), "SELECT * FROM rating_events")
	require.NoError(t, err)
	assert.Equal(t, 1, raw.Len())
	assert.Equal(t, int64(1), raw.Rows[0]["ID"])
}

func TestRepository_Stream(t *testing.T) {
	repo := NewRepository[testmodels.RatingEvent](eventStore(1, 2, 3))

	var ids []int64
	for res := range repo.Stream(context.Background(), storagemodels.NewStatement("SELECT * FROM rating_events")) {
		require.NoError(t, res.Error)
		ids = append(ids, res.Item.ID)
	}
	assert.Equal(t, []int64{1, 2, 3}, ids)
}

func TestRepository_SliceWalksAllPages(t *testing.T) {
	repo := NewRepository[testmodels.RatingEvent](eventStore(1, 2, 3, 4, 5))
	ctx := context.Background()

	var pages [][]int64
	c := execution.FirstPage(2)
	for {
		page, err := repo.Slice(ctx, c, "SELECT * FROM rating_events")
		require.NoError(t, err)

		var ids []int64
		for _, e := range page.Rows {
			ids = append(ids, e.ID)
		}
		pages = append(pages, ids)

		next, ok := page.NextPage()
		if !ok {
			break
		}
		c = next
	}
	assert.Equal(t, [][]int64{{1, 2}, {3, 4}, {5}}, pages)
}

func TestRepository_SliceCapsPageSize(t *testing.T) {
	store := eventStore(1, 2, 3, 4, 5)
	repo := NewRepository[testmodels.RatingEvent](store, WithPagination(config.Pagination{DefaultPageSize: 2, MaxPageSize: 3}))

	page, err := repo.Slice(context.Background(), execution.FirstPage(100), "SELECT * FROM rating_events")
	require.NoError(t, err)
	assert.Len(t, page.Rows, 3)
	assert.Equal(t, 4, store.Statements()[0].Limit)
}

func TestRepository_SliceRejectsInvalidPageSize(t *testing.T) {
	gw := datastore.NewMockGateway[testmodels.RatingEvent](gomock.NewController(t))
	repo := NewRepository[testmodels.RatingEvent](gw)

	_, err := repo.Slice(context.Background(), execution.FirstPage(0), "SELECT * FROM rating_events")
	assert.True(t, errors.IsInvalidPageSize(err))
}

func TestRepository_PageWithTokens(t *testing.T) {
	repo := NewRepository[testmodels.RatingEvent](eventStore(1, 2, 3, 4, 5), WithPagination(config.Pagination{DefaultPageSize: 2, MaxPageSize: 10}))
	ctx := context.Background()

	page, err := repo.Page(ctx, "", 0, "SELECT * FROM rating_events")
	require.NoError(t, err)
	require.Len(t, page.Rows, 2)

	next, ok := page.NextPage()
	require.True(t, ok)
	token, err := next.Encode()
	require.NoError(t, err)

	page, err = repo.Page(ctx, token, 0, "SELECT * FROM rating_events")
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Rows[0].ID)
	assert.Len(t, page.Rows, 2)

	page, err = repo.Page(ctx, token, 3, "SELECT * FROM rating_events")
	require.NoError(t, err)
	assert.Len(t, page.Rows, 3)
	assert.False(t, page.HasMore)

	_, err = repo.Page(ctx, "%%%", 0, "SELECT * FROM rating_events")
	assert.True(t, errors.IsInvalidContinuation(err))
}

func TestRepository_PageRejectsNegativeSize(t *testing.T) {
	gw := datastore.NewMockGateway[testmodels.RatingEvent](gomock.NewController(t))
	repo := NewRepository[testmodels.RatingEvent](gw)

	token, err := execution.ContinueAfter(int64(2), 2).Encode()
	require.NoError(t, err)

	_, err = repo.Page(context.Background(), token, -1, "SELECT * FROM rating_events")
	assert.True(t, errors.IsInvalidPageSize(err))

	_, err = repo.Page(context.Background(), "", -1, "SELECT * FROM rating_events")
	assert.True(t, errors.IsInvalidPageSize(err))
}

type playerName struct {
	N string
}

type playerNameProcessor struct{}

func (playerNameProcessor) ReturnedType() reflect.Type {
	return reflect.TypeOf(playerName{})
}

func (playerNameProcessor) ProcessResult(source any) (any, error) {
	player, ok := source.(testmodels.Player)
	if !ok {
		return nil, fmt.Errorf("unexpected %T", source)
	}
	return playerName{N: player.Name}, nil
}

func TestRepository_QueryStreamProcessesEachRow(t *testing.T) {
	players := mock.New[testmodels.Player]().WithRows(
		testmodels.Player{ID: "ann", Name: "Ann"},
		testmodels.Player{ID: "bob", Name: "Bob"},
	)
	repo := NewRepository[testmodels.Player](players)

	result, err := repo.Query(execution.KindStream, execution.Continuation{}, playerNameProcessor{}).
		Execute(context.Background(), "SELECT * FROM players")
	require.NoError(t, err)

	stream, ok := result.(<-chan storagemodels.StreamResult[any])
	require.True(t, ok, "got %T", result)

	var names []any
	for res := range stream {
		require.NoError(t, res.Error)
		names = append(names, res.Item)
	}
	assert.ElementsMatch(t, []any{playerName{N: "Ann"}, playerName{N: "Bob"}}, names)
}

func TestRepository_QueryWithProjection(t *testing.T) {
	players := mock.New[testmodels.Player]().WithRows(testmodels.Player{ID: "ann", Name: "Ann", SiteURL: "https://ann.example"})
	repo := NewRepository[testmodels.Player](players)

	result, err := repo.Query(execution.KindCollection, execution.Continuation{}, execution.ProjectorFor[testmodels.PlayerSummary]()).
		Execute(context.Background(), "SELECT * FROM players")
	require.NoError(t, err)
	assert.Equal(t, []testmodels.PlayerSummary{{ID: "ann", Name: "Ann"}}, result)

	result, err = repo.Query(execution.KindCollection, execution.Continuation{}, nil).Execute(context.Background(), "SELECT * FROM players")
	require.NoError(t, err)
	assert.IsType(t, []testmodels.Player{}, result)
}

func TestRepository_UnknownKind(t *testing.T) {
	repo := NewRepository[testmodels.Player](mock.New[testmodels.Player]())

	_, err := repo.Execution(execution.Kind(99), execution.Continuation{}).Execute(context.Background(), "SELECT 1")
	assert.EqualError(t, err, "unknown execution kind Kind(99)")
}

type requestIDCapture struct {
	datastore.Gateway[testmodels.Player]
	requestID string
}

func (c *requestIDCapture) FetchMany(ctx context.Context, stmt storagemodels.Statement) ([]testmodels.Player, error) {
	c.requestID = trace.GetRequestIDFromContext(ctx)
	return c.Gateway.FetchMany(ctx, stmt)
}

func TestRepository_RequestID(t *testing.T) {
	capture := &requestIDCapture{Gateway: mock.New[testmodels.Player]()}
	repo := NewRepository[testmodels.Player](capture)

	_, err := repo.FindAll(context.Background(), "SELECT * FROM players")
	require.NoError(t, err)
	assert.Len(t, capture.requestID, 26)

	ctx := trace.InjectRequestID(context.Background(), "req-1")
	_, err = repo.FindAll(ctx, "SELECT * FROM players")
	require.NoError(t, err)
	assert.Equal(t, "req-1", capture.requestID)
}

func TestVersionInfo(t *testing.T) {
	info := GetVersionInfo()
	assert.Equal(t, Version, info.Version)
	assert.NotEmpty(t, info.GoVersion)
	assert.Contains(t, info.String(), "entityquery "+Version)
	assert.Equal(t, reflect.TypeOf(VersionInfo{}), reflect.TypeOf(info))
}
