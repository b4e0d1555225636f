package eventstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lunchly/internal/domain/event"
	"lunchly/internal/domain/model"
	"lunchly/internal/domain/repository"
)

func orderEvents(t *testing.T) []event.DomainEvent {
	t.Helper()
	id := model.OrderID{VendorID: "vendor-1", UserID: "user-1", Date: model.NewDate(2018, time.March, 16)}
	return []event.DomainEvent{
		&event.OrderCreated{OrderID: id, MenuID: "menu-1", Timestamp: time.Now()},
		&event.DishAddedToOrder{
			OrderID:      id,
			Dish:         model.Dish{ID: "dish-1", Name: "Minestrone", VendorID: "vendor-1", MenuID: "menu-1"},
			EventVersion: 2,
			Timestamp:    time.Now(),
		},
	}
}

func TestSaveAndGetEvents(t *testing.T) {
	store := NewInMemoryEventStore()
	ctx := context.Background()
	events := orderEvents(t)

	require.NoError(t, store.SaveEvents(ctx, "agg-1", events, 0))

	got, err := store.GetEvents(ctx, "agg-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, events[0], got[0])
	assert.Equal(t, events[1], got[1])
}

func TestSaveEventsVersionConflict(t *testing.T) {
	store := NewInMemoryEventStore()
	ctx := context.Background()
	events := orderEvents(t)

	require.NoError(t, store.SaveEvents(ctx, "agg-1", events[:1], 0))

	err := store.SaveEvents(ctx, "agg-1", events[1:], 0)
	assert.ErrorIs(t, err, repository.ErrVersionConflict)

	got, err := store.GetEvents(ctx, "agg-1")
	require.NoError(t, err)
	assert.Len(t, got, 1, "conflicting batch is not written")

	require.NoError(t, store.SaveEvents(ctx, "agg-1", events[1:], 1))
}

func TestGetEventsNotFound(t *testing.T) {
	store := NewInMemoryEventStore()

	_, err := store.GetEvents(context.Background(), "agg-404")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestGetEventsSince(t *testing.T) {
	store := NewInMemoryEventStore()
	ctx := context.Background()
	events := orderEvents(t)

	require.NoError(t, store.SaveEvents(ctx, "agg-1", events, 0))

	got, err := store.GetEventsSince(ctx, "agg-1", 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, events[1], got[0])

	got, err = store.GetEventsSince(ctx, "agg-1", 2)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = store.GetEventsSince(ctx, "agg-404", 0)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestGetEventsReturnsCopy(t *testing.T) {
	store := NewInMemoryEventStore()
	ctx := context.Background()
	events := orderEvents(t)

	require.NoError(t, store.SaveEvents(ctx, "agg-1", events, 0))

	got, err := store.GetEvents(ctx, "agg-1")
	require.NoError(t, err)
	got[0] = nil

	again, err := store.GetEvents(ctx, "agg-1")
	require.NoError(t, err)
	assert.NotNil(t, again[0])
}

func TestExists(t *testing.T) {
	store := NewInMemoryEventStore()
	ctx := context.Background()

	ok, err := store.Exists(ctx, "agg-1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.SaveEvents(ctx, "agg-1", orderEvents(t), 0))

	ok, err = store.Exists(ctx, "agg-1")
	require.NoError(t, err)
	assert.True(t, ok)
}
