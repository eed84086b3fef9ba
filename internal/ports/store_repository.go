package ports

import (
	"context"
	"store-locator-service/internal/domain"
)

// Port: a boundary for retrieving StoreLocation records from a data source.
type StoreRepository interface {
	// Retrieve all stores ordered by identifier.
	ListStores(ctx context.Context) ([]domain.StoreLocation, error)
	// Retrieve one store; returns domain.ErrStoreNotFound when absent.
	GetStore(ctx context.Context, id int) (domain.StoreLocation, error)
}

// Read-only, ordered snapshot of the store directory held in memory.
type StoreDirectory interface {
	Stores() []domain.StoreLocation
	Store(id int) (domain.StoreLocation, bool)
}
