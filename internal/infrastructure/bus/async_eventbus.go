package bus

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"lunchly/internal/domain/event"
)

// AsyncEventBus implements EventBus with asynchronous publishing. The
// purchase-order router subscribes here so cross-entity delivery never blocks
// the originating command.
type AsyncEventBus struct {
	handlers map[string][]EventHandler
	logger   *zap.Logger
	mu       sync.RWMutex
	wg       sync.WaitGroup
	errorCh  chan error
	quit     chan struct{}
}

// NewAsyncEventBus creates a new async event bus
func NewAsyncEventBus(logger *zap.Logger) *AsyncEventBus {
	return &AsyncEventBus{
		handlers: make(map[string][]EventHandler),
		logger:   logger,
		errorCh:  make(chan error, 100),
		quit:     make(chan struct{}),
	}
}

// Subscribe registers a handler for a specific event type
func (b *AsyncEventBus) Subscribe(eventType string, handler EventHandler) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
	return nil
}

// Start launches the error monitor
func (b *AsyncEventBus) Start(ctx context.Context) error {
	go func() {
		for {
			select {
			case err := <-b.errorCh:
				if err != nil {
					b.logger.Warn("async event handler error", zap.Error(err))
				}
			case <-b.quit:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
	return nil
}

// Stop waits for in-flight handlers, stops the error monitor and drains any
// errors it had not picked up yet. The error channel stays open so a late
// Publish cannot panic.
func (b *AsyncEventBus) Stop() error {
	b.wg.Wait()
	close(b.quit)

	for {
		select {
		case err := <-b.errorCh:
			if err != nil {
				b.logger.Warn("async event handler error", zap.Error(err))
			}
		default:
			return nil
		}
	}
}

// Publish publishes an event asynchronously to all subscribed handlers
func (b *AsyncEventBus) Publish(ctx context.Context, evt event.DomainEvent) error {
	b.mu.RLock()
	handlers := b.handlers[evt.EventType()]
	b.mu.RUnlock()

	if len(handlers) == 0 {
		return nil
	}

	b.wg.Add(len(handlers))
	for _, handler := range handlers {
		go b.publishToHandler(ctx, handler, evt)
	}

	return nil
}

// PublishBatch publishes multiple events asynchronously
func (b *AsyncEventBus) PublishBatch(ctx context.Context, events []event.DomainEvent) error {
	for _, evt := range events {
		if err := b.Publish(ctx, evt); err != nil {
			return err
		}
	}
	return nil
}

// Wait waits for all async event handlers to complete
func (b *AsyncEventBus) Wait() {
	b.wg.Wait()
}

func (b *AsyncEventBus) publishToHandler(ctx context.Context, handler EventHandler, evt event.DomainEvent) {
	defer b.wg.Done()

	if err := handler.Handle(ctx, evt); err != nil {
		b.logger.Warn("event handler failed",
			zap.String("event_type", evt.EventType()),
			zap.String("aggregate_id", evt.AggregateID()),
			zap.Error(err))

		select {
		case b.errorCh <- err:
		default:
			// Error channel full, the warning above is the record.
		}
	}
}
