package repository

import (
	"context"

	"lunchly/internal/domain/aggregate"
)

// VendorRepository defines operations for the event-sourced vendor aggregate
type VendorRepository interface {
	EventSourcedRepository

	// Aggregate operations (built from events)
	Save(ctx context.Context, vendor *aggregate.Vendor) error
	GetByID(ctx context.Context, id string) (*aggregate.Vendor, error)

	// GetByName resolves a vendor by its unique name; returns ErrNotFound
	// when no vendor carries the name. Used to enforce name uniqueness at
	// creation.
	GetByName(ctx context.Context, name string) (*aggregate.Vendor, error)
}
