package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/drdrak3/silvershop-core/internal/domains/catalog/domain"
	"github.com/drdrak3/silvershop-core/internal/domains/catalog/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory product persistence adapter.
type Repository struct {
	mu       sync.RWMutex
	products map[int64]*domain.Product
	nextID   int64
}

func NewRepository() *Repository {
	return &Repository{products: map[int64]*domain.Product{}}
}

func (r *Repository) Save(_ context.Context, product *domain.Product) (*domain.Product, error) {
	if product == nil {
		return nil, errors.New("product is nil")
	}
	clone := cloneProduct(product)
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if clone.ID == 0 {
		r.nextID++
		clone.ID = r.nextID
	} else if clone.ID > r.nextID {
		r.nextID = clone.ID
	}
	for _, variation := range clone.Variations {
		variation.ProductID = clone.ID
	}
	r.products[clone.ID] = clone
	return cloneProduct(clone), nil
}

func (r *Repository) GetByID(_ context.Context, id int64) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	product, ok := r.products[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return cloneProduct(product), nil
}

func (r *Repository) GetByVariationID(_ context.Context, id int64) (*domain.Variation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, product := range r.products {
		for _, variation := range product.Variations {
			if variation.ID == id {
				clone := *variation
				return &clone, nil
			}
		}
	}
	return nil, ports.ErrNotFound
}

func (r *Repository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *Repository) List(_ context.Context) ([]*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Product, 0, len(r.products))
	for _, product := range r.products {
		list = append(list, cloneProduct(product))
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func cloneProduct(product *domain.Product) *domain.Product {
	clone := *product
	clone.ImageURLs = append([]string(nil), product.ImageURLs...)
	clone.TagNames = append([]string(nil), product.TagNames...)
	clone.Variations = make([]*domain.Variation, 0, len(product.Variations))
	for _, variation := range product.Variations {
		v := *variation
		clone.Variations = append(clone.Variations, &v)
	}
	return &clone
}
