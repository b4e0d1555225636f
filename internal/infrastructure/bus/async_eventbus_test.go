package bus

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"lunchly/internal/domain/event"
	"lunchly/internal/domain/model"
)

func orderCreated(day int) *event.OrderCreated {
	return &event.OrderCreated{
		OrderID:   model.OrderID{VendorID: "vendor-1", UserID: "user-1", Date: model.NewDate(2018, time.March, day)},
		MenuID:    "menu-1",
		Timestamp: time.Now(),
	}
}

func TestAsyncPublishDeliversToAllHandlers(t *testing.T) {
	b := NewAsyncEventBus(zap.NewNop())

	var mu sync.Mutex
	var got []string
	record := func(name string) EventHandler {
		return EventHandlerFunc(func(ctx context.Context, e event.DomainEvent) error {
			mu.Lock()
			defer mu.Unlock()
			got = append(got, name)
			return nil
		})
	}
	require.NoError(t, b.Subscribe("OrderCreated", record("first")))
	require.NoError(t, b.Subscribe("OrderCreated", record("second")))

	require.NoError(t, b.Publish(context.Background(), orderCreated(16)))
	b.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.ElementsMatch(t, []string{"first", "second"}, got)
}

func TestAsyncPublishWithoutSubscribers(t *testing.T) {
	b := NewAsyncEventBus(zap.NewNop())

	require.NoError(t, b.Publish(context.Background(), orderCreated(16)))
	b.Wait()
}

func TestAsyncFailingHandlerIsLogged(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	b := NewAsyncEventBus(zap.New(core))

	require.NoError(t, b.Subscribe("OrderCreated", EventHandlerFunc(
		func(ctx context.Context, e event.DomainEvent) error {
			return errors.New("handler broke")
		})))

	require.NoError(t, b.Publish(context.Background(), orderCreated(16)))
	b.Wait()

	assert.Equal(t, 1, logs.FilterMessage("event handler failed").Len())
}

func TestStopDrainsPendingErrors(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	b := NewAsyncEventBus(zap.New(core))

	// No Start, so every handler error stays queued until Stop.
	require.NoError(t, b.Subscribe("OrderCreated", EventHandlerFunc(
		func(ctx context.Context, e event.DomainEvent) error {
			return errors.New("handler broke")
		})))

	for day := 1; day <= 3; day++ {
		require.NoError(t, b.Publish(context.Background(), orderCreated(day)))
	}
	b.Wait()

	require.NoError(t, b.Stop())
	assert.Equal(t, 3, logs.FilterMessage("async event handler error").Len())
}

func TestPublishAfterStopDoesNotPanic(t *testing.T) {
	b := NewAsyncEventBus(zap.NewNop())
	require.NoError(t, b.Start(context.Background()))

	require.NoError(t, b.Subscribe("OrderCreated", EventHandlerFunc(
		func(ctx context.Context, e event.DomainEvent) error {
			return errors.New("handler broke")
		})))

	require.NoError(t, b.Publish(context.Background(), orderCreated(16)))
	b.Wait()
	require.NoError(t, b.Stop())

	// A handler error recorded after shutdown must not hit a closed channel.
	require.NoError(t, b.Publish(context.Background(), orderCreated(17)))
	b.Wait()
}
