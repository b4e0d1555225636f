package repository

import (
	"context"

	"lunchly/internal/domain/aggregate"
	"lunchly/internal/domain/model"
)

// OrderRepository defines operations for the event-sourced order aggregate
type OrderRepository interface {
	EventSourcedRepository

	// Aggregate operations (built from events)
	Save(ctx context.Context, order *aggregate.Order) error
	GetByID(ctx context.Context, id model.OrderID) (*aggregate.Order, error)
	Exists(ctx context.Context, id model.OrderID) (bool, error)
}
