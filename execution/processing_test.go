/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package execution

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suparena/entityquery/datastore/mock"
	"github.com/suparena/entityquery/datastore/testmodels"
	"github.com/suparena/entityquery/storagemodels"
)

type countingProcessor struct {
	returned reflect.Type
	calls    int
}

func (p *countingProcessor) ReturnedType() reflect.Type {
	return p.returned
}

func (p *countingProcessor) ProcessResult(source any) (any, error) {
	p.calls++
	return "processed", nil
}

func TestIsScalarLike(t *testing.T) {
	var (
		i64  int64
		f32  float32
		b    bool
		r    rune
		by   byte
		c128 complex128
		u    uint
		s    string
		st   testmodels.Player
		sl   []int
		pp   **int
	)

	tests := []struct {
		name     string
		t        reflect.Type
		expected bool
	}{
		{"int64", reflect.TypeOf(i64), true},
		{"float32", reflect.TypeOf(f32), true},
		{"bool", reflect.TypeOf(b), true},
		{"rune", reflect.TypeOf(r), true},
		{"byte", reflect.TypeOf(by), true},
		{"complex128", reflect.TypeOf(c128), true},
		{"uint", reflect.TypeOf(u), true},
		{"pointer to int64", reflect.TypeOf(&i64), true},
		{"pointer to bool", reflect.TypeOf(&b), true},
		{"string", reflect.TypeOf(s), false},
		{"struct", reflect.TypeOf(st), false},
		{"slice", reflect.TypeOf(sl), false},
		{"pointer to pointer", reflect.TypeOf(pp), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsScalarLike(tt.t))
		})
	}
}

func TestProcessingConverter(t *testing.T) {
	t.Run("scalar passes through", func(t *testing.T) {
		p := &countingProcessor{returned: reflect.TypeOf(int64(0))}
		out, err := ProcessingConverter(p)(int64(7))
		require.NoError(t, err)
		assert.Equal(t, int64(7), out)
		assert.Zero(t, p.calls)
	})

	t.Run("struct is processed", func(t *testing.T) {
		p := &countingProcessor{returned: reflect.TypeOf(testmodels.PlayerSummary{})}
		out, err := ProcessingConverter(p)(testmodels.Player{ID: "ann"})
		require.NoError(t, err)
		assert.Equal(t, "processed", out)
		assert.Equal(t, 1, p.calls)
	})
}

func TestWithResultProcessing(t *testing.T) {
	ctx := context.Background()
	store := mock.New[testmodels.Player]().WithRows(players()...)

	exec := WithResultProcessing(Collection[testmodels.Player](store), ProcessingConverter(ProjectorFor[testmodels.PlayerSummary]()))
	result, err := exec.Execute(ctx, "SELECT * FROM players")
	require.NoError(t, err)

	summaries, ok := result.([]testmodels.PlayerSummary)
	require.True(t, ok, "got %T", result)
	assert.ElementsMatch(t, []testmodels.PlayerSummary{
		{ID: "ann", Name: "Ann"},
		{ID: "bob", Name: "Bob"},
		{ID: "cid", Name: "Cid"},
	}, summaries)
}

func TestWithResultProcessing_DelegateErrorSkipsConversion(t *testing.T) {
	failing := ExecutorFunc(func(context.Context, string, ...any) (any, error) {
		return nil, assert.AnError
	})
	converted := false
	exec := WithResultProcessing(failing, func(source any) (any, error) {
		converted = true
		return source, nil
	})

	_, err := exec.Execute(context.Background(), "SELECT 1")
	assert.Same(t, assert.AnError, err)
	assert.False(t, converted)
}

func TestWithResultProcessing_ScalarCollectionPassesThrough(t *testing.T) {
	store := mock.New[testmodels.Player]().WithRows(players()...)
	p := &countingProcessor{returned: reflect.TypeOf(int64(0))}

	exec := WithResultProcessing(Collection[testmodels.Player](store), ProcessingConverter(p))
	result, err := exec.Execute(context.Background(), "SELECT * FROM players")
	require.NoError(t, err)

	rows, ok := result.([]testmodels.Player)
	require.True(t, ok, "got %T", result)
	assert.ElementsMatch(t, players(), rows)
	assert.Zero(t, p.calls)
}

func TestWithResultProcessing_StreamConvertsEachItem(t *testing.T) {
	store := mock.New[testmodels.Player]().WithRows(players()...)
	p := &countingProcessor{returned: reflect.TypeOf(testmodels.PlayerSummary{})}

	exec := WithResultProcessing(Stream[testmodels.Player](store, nil), ProcessingConverter(p))
	result, err := exec.Execute(context.Background(), "SELECT * FROM players")
	require.NoError(t, err)

	var items []any
	for res := range result.(<-chan storagemodels.StreamResult[any]) {
		require.NoError(t, res.Error)
		items = append(items, res.Item)
	}
	assert.Equal(t, []any{"processed", "processed", "processed"}, items)
	assert.Equal(t, 3, p.calls)
}

func TestWithResultProcessing_AbandonedStreamStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	stop := make(chan struct{})
	defer close(stop)

	// the source never closes, only the context ends the conversion
	in := make(chan storagemodels.StreamResult[any])
	go func() {
		for i := 0; ; i++ {
			select {
			case <-stop:
				return
			case in <- storagemodels.StreamResult[any]{Item: testmodels.Player{ID: "p"}, Meta: storagemodels.StreamMeta{Index: int64(i)}}:
			}
		}
	}()

	source := ExecutorFunc(func(context.Context, string, ...any) (any, error) {
		return (<-chan storagemodels.StreamResult[any])(in), nil
	})
	exec := WithResultProcessing(source, ProcessingConverter(ProjectorFor[testmodels.PlayerSummary]()))
	result, err := exec.Execute(ctx, "SELECT * FROM players")
	require.NoError(t, err)
	out := result.(<-chan storagemodels.StreamResult[any])

	first := <-out
	require.NoError(t, first.Error)
	cancel()

	assert.Eventually(t, func() bool {
		select {
		case _, ok := <-out:
			return !ok
		default:
			return false
		}
	}, time.Second, time.Millisecond)
}
