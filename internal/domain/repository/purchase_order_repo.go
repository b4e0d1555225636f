package repository

import (
	"context"

	"lunchly/internal/domain/aggregate"
	"lunchly/internal/domain/model"
)

// PurchaseOrderRepository defines operations for the event-sourced purchase
// order aggregate
type PurchaseOrderRepository interface {
	EventSourcedRepository

	// Aggregate operations (built from events)
	Save(ctx context.Context, po *aggregate.PurchaseOrder) error
	GetByID(ctx context.Context, id model.PurchaseOrderID) (*aggregate.PurchaseOrder, error)
}
