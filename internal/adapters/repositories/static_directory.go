package repositories

import (
	"context"
	"fmt"
	"store-locator-service/internal/domain"
	"store-locator-service/internal/ports"
)

// StaticDirectory is an immutable, ordered in-memory snapshot of the store directory.
type StaticDirectory struct {
	stores []domain.StoreLocation
	byID   map[int]int
}

// NewStaticDirectory copies stores, keeping their order.
func NewStaticDirectory(stores []domain.StoreLocation) *StaticDirectory {
	d := &StaticDirectory{
		stores: append([]domain.StoreLocation(nil), stores...),
		byID:   make(map[int]int, len(stores)),
	}
	for i, s := range d.stores {
		if _, dup := d.byID[s.ID]; !dup {
			d.byID[s.ID] = i
		}
	}
	return d
}

// LoadDirectory snapshots the repository once; the result is never refreshed.
func LoadDirectory(ctx context.Context, repo ports.StoreRepository) (*StaticDirectory, error) {
	stores, err := repo.ListStores(ctx)
	if err != nil {
		return nil, fmt.Errorf("load directory: %w", err)
	}
	return NewStaticDirectory(stores), nil
}

// Stores returns a copy of the directory in order.
func (d *StaticDirectory) Stores() []domain.StoreLocation {
	return append([]domain.StoreLocation(nil), d.stores...)
}

func (d *StaticDirectory) Store(id int) (domain.StoreLocation, bool) {
	i, ok := d.byID[id]
	if !ok {
		return domain.StoreLocation{}, false
	}
	return d.stores[i], true
}

func (d *StaticDirectory) Len() int { return len(d.stores) }
