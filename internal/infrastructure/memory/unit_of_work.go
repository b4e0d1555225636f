package memory

import (
	"context"
	"fmt"
	"sync"

	"lunchly/internal/domain/repository"
	"lunchly/internal/infrastructure/eventstore"
)

// UnitOfWork implements the unit-of-work contract over the in-memory stores.
// The in-memory stores apply appends atomically, so Begin/Commit/Rollback
// only track transaction state.
type UnitOfWork struct {
	vendorStore *eventstore.InMemoryEventStore
	orderStore  *eventstore.InMemoryEventStore
	poStore     *eventstore.InMemoryEventStore

	vendorRepo *VendorRepository
	orderRepo  *OrderRepository
	poRepo     *PurchaseOrderRepository

	mutex         sync.Mutex
	inTransaction bool
}

// Begin starts a new transaction
func (uow *UnitOfWork) Begin(ctx context.Context) error {
	uow.mutex.Lock()
	defer uow.mutex.Unlock()

	if uow.inTransaction {
		return fmt.Errorf("unit of work is already in transaction")
	}
	uow.inTransaction = true
	return nil
}

// Commit commits the current transaction
func (uow *UnitOfWork) Commit(ctx context.Context) error {
	uow.mutex.Lock()
	defer uow.mutex.Unlock()

	if !uow.inTransaction {
		return fmt.Errorf("no active transaction to commit")
	}
	uow.inTransaction = false
	return nil
}

// Rollback rolls back the current transaction
func (uow *UnitOfWork) Rollback(ctx context.Context) error {
	uow.mutex.Lock()
	defer uow.mutex.Unlock()

	if !uow.inTransaction {
		return fmt.Errorf("no active transaction to rollback")
	}
	uow.inTransaction = false
	return nil
}

// VendorRepository returns the vendor repository
func (uow *UnitOfWork) VendorRepository() repository.VendorRepository {
	uow.mutex.Lock()
	defer uow.mutex.Unlock()

	if uow.vendorRepo == nil {
		uow.vendorRepo = NewVendorRepository(uow.vendorStore)
	}
	return uow.vendorRepo
}

// OrderRepository returns the order repository
func (uow *UnitOfWork) OrderRepository() repository.OrderRepository {
	uow.mutex.Lock()
	defer uow.mutex.Unlock()

	if uow.orderRepo == nil {
		uow.orderRepo = NewOrderRepository(uow.orderStore)
	}
	return uow.orderRepo
}

// PurchaseOrderRepository returns the purchase order repository
func (uow *UnitOfWork) PurchaseOrderRepository() repository.PurchaseOrderRepository {
	uow.mutex.Lock()
	defer uow.mutex.Unlock()

	if uow.poRepo == nil {
		uow.poRepo = NewPurchaseOrderRepository(uow.poStore)
	}
	return uow.poRepo
}

// Close releases resources held by the unit of work
func (uow *UnitOfWork) Close() error {
	return nil
}

// IsInTransaction reports whether a transaction is active
func (uow *UnitOfWork) IsInTransaction() bool {
	uow.mutex.Lock()
	defer uow.mutex.Unlock()
	return uow.inTransaction
}

// UnitOfWorkFactory creates units of work sharing one set of event stores.
type UnitOfWorkFactory struct {
	vendorStore *eventstore.InMemoryEventStore
	orderStore  *eventstore.InMemoryEventStore
	poStore     *eventstore.InMemoryEventStore
}

// NewUnitOfWorkFactory creates a factory with fresh in-memory stores.
func NewUnitOfWorkFactory() *UnitOfWorkFactory {
	return &UnitOfWorkFactory{
		vendorStore: eventstore.NewInMemoryEventStore(),
		orderStore:  eventstore.NewInMemoryEventStore(),
		poStore:     eventstore.NewInMemoryEventStore(),
	}
}

// CreateUnitOfWork returns a unit of work over the shared stores.
func (f *UnitOfWorkFactory) CreateUnitOfWork() repository.UnitOfWork {
	return &UnitOfWork{
		vendorStore: f.vendorStore,
		orderStore:  f.orderStore,
		poStore:     f.poStore,
	}
}
