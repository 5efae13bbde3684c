package screen

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/byxorna/wrench/pkg/api"
	"github.com/byxorna/wrench/pkg/filter"
	v1 "github.com/byxorna/wrench/pkg/types/v1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu   sync.Mutex
	seen []Notification
}

func (r *recorder) Notify(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, n)
}

func (r *recorder) all() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.seen...)
}

func staticParts(parts ...v1.Part) Fetcher[v1.Part] {
	return func(context.Context) ([]v1.Part, error) { return parts, nil }
}

var stockParts = []v1.Part{
	{ID: 1, Name: "Oil filter", Stock: 0, Active: true},
	{ID: 2, Name: "Brake pad", Stock: 5, Active: true},
	{ID: 3, Name: "Spark plug", Stock: 20, Active: false},
}

func TestLoadThenFilterOutOfStock(t *testing.T) {
	c := New(Parts, staticParts(stockParts...), PartSpec(5), nil, nil)
	c.SetSecondary(string(v1.OutOfStock))
	require.NoError(t, c.Load(context.Background()))

	assert.Equal(t, stockParts[:1], c.Visible())
	assert.Equal(t, stockParts, c.All())
	st := c.Status()
	assert.True(t, st.Loaded)
	assert.False(t, st.Loading)
	assert.Equal(t, 3, st.Total)
	assert.Equal(t, 1, st.Visible)
}

func TestStatusAllReturnsEverything(t *testing.T) {
	c := New(Parts, staticParts(stockParts...), PartSpec(5), nil, nil)
	require.NoError(t, c.Load(context.Background()))
	c.SetStatus(filter.All)
	assert.Equal(t, stockParts, c.Visible())

	c.SetStatus("inactive")
	assert.Equal(t, stockParts[2:], c.Visible())
}

func TestClearFiltersRestoresCollection(t *testing.T) {
	c := New(Parts, staticParts(stockParts...), PartSpec(5), nil, nil)
	require.NoError(t, c.Load(context.Background()))
	c.SetSearch("brake")
	c.CycleStatus()
	c.CycleSecondary()
	require.NotEqual(t, stockParts, c.Visible())

	c.ClearFilters()
	assert.Equal(t, filter.Criteria{Search: "", Status: filter.All, Secondary: filter.All}, c.Criteria())
	assert.Equal(t, stockParts, c.Visible())
}

func TestResetForgetsCollection(t *testing.T) {
	c := New(Parts, staticParts(stockParts...), PartSpec(5), nil, nil)
	c.SetSearch("brake")
	require.NoError(t, c.Load(context.Background()))
	require.Len(t, c.Visible(), 1)

	c.Reset()
	assert.Empty(t, c.All())
	assert.Empty(t, c.Visible())
	assert.Equal(t, filter.Default(), c.Criteria())
	assert.Equal(t, Status{}, c.Status())
}

func TestLoadFailureKeepsCollection(t *testing.T) {
	fail := false
	fetch := func(context.Context) ([]v1.Part, error) {
		if fail {
			return nil, &api.APIError{Method: "GET", Path: "/api/parts", StatusCode: 500, Message: "database unavailable"}
		}
		return stockParts, nil
	}
	n := &recorder{}
	c := New(Parts, fetch, PartSpec(5), n, nil)
	require.NoError(t, c.Load(context.Background()))

	fail = true
	err := c.Load(context.Background())
	require.Error(t, err)
	assert.Equal(t, stockParts, c.All())
	assert.Error(t, c.Status().Err)
	assert.Equal(t, []Notification{{Level: LevelError, Message: "database unavailable"}}, n.all())
}

func TestNewerLoadWins(t *testing.T) {
	calls := 0
	var mu sync.Mutex
	started := make(chan struct{})
	fetch := func(ctx context.Context) ([]v1.Part, error) {
		mu.Lock()
		calls++
		call := calls
		mu.Unlock()
		if call == 1 {
			close(started)
			<-ctx.Done()
			// a stale backend that answers anyway
			return stockParts[:1], nil
		}
		return stockParts[1:], nil
	}
	n := &recorder{}
	c := New(Parts, fetch, PartSpec(5), n, nil)

	firstErr := make(chan error, 1)
	go func() { firstErr <- c.Load(context.Background()) }()
	<-started

	require.NoError(t, c.Load(context.Background()))
	select {
	case err := <-firstErr:
		assert.ErrorIs(t, err, ErrSuperseded)
	case <-time.After(time.Second):
		t.Fatal("superseded load was not cancelled")
	}
	assert.Equal(t, stockParts[1:], c.All())
	assert.Empty(t, n.all(), "a superseded load must not notify")
}

func TestCancelDiscardsInFlightLoad(t *testing.T) {
	started := make(chan struct{})
	fetch := func(ctx context.Context) ([]v1.Part, error) {
		close(started)
		<-ctx.Done()
		return nil, ctx.Err()
	}
	c := New(Parts, fetch, PartSpec(5), nil, nil)
	done := make(chan error, 1)
	go func() { done <- c.Load(context.Background()) }()
	<-started
	c.Cancel()
	assert.ErrorIs(t, <-done, ErrSuperseded)
	assert.False(t, c.Status().Loading)
}

func TestPerformReloadsOnSuccess(t *testing.T) {
	loads := 0
	fetch := func(context.Context) ([]v1.Part, error) {
		loads++
		if loads > 1 {
			return stockParts[1:], nil
		}
		return stockParts, nil
	}
	n := &recorder{}
	c := New(Parts, fetch, PartSpec(5), n, nil)
	require.NoError(t, c.Load(context.Background()))

	var deleted v1.ID
	action := deleteAction("part", func(p v1.Part) string { return p.Name }, func(_ context.Context, id v1.ID) error {
		deleted = id
		return nil
	})
	require.NoError(t, c.Perform(context.Background(), action, stockParts[0]))

	assert.Equal(t, v1.ID(1), deleted)
	assert.Equal(t, 2, loads)
	assert.Equal(t, stockParts[1:], c.All())
	assert.Equal(t, []Notification{{Level: LevelSuccess, Message: "Deleted part Oil filter"}}, n.all())
}

func TestPerformFailureDoesNotReload(t *testing.T) {
	loads := 0
	fetch := func(context.Context) ([]v1.Part, error) {
		loads++
		return stockParts, nil
	}
	n := &recorder{}
	c := New(Parts, fetch, PartSpec(5), n, nil)
	require.NoError(t, c.Load(context.Background()))

	action := deleteAction("part", func(p v1.Part) string { return p.Name }, func(context.Context, v1.ID) error {
		return errors.New("disk on fire")
	})
	err := c.Perform(context.Background(), action, stockParts[0])
	require.Error(t, err)
	assert.Equal(t, 1, loads)
	assert.Equal(t, stockParts, c.All())
	assert.Equal(t, []Notification{{Level: LevelError, Message: "Unexpected error"}}, n.all())
}
