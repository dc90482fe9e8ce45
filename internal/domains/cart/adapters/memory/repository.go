package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/drdrak3/silvershop-core/internal/domains/cart/domain"
	"github.com/drdrak3/silvershop-core/internal/domains/cart/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory order and line-item persistence adapter.
type Repository struct {
	mu        sync.RWMutex
	orders    map[int64]*domain.Order
	items     map[int64]*domain.Item
	touched   map[int64]time.Time
	nextOrder int64
	nextItem  int64
}

func NewRepository() *Repository {
	return &Repository{
		orders:  map[int64]*domain.Order{},
		items:   map[int64]*domain.Item{},
		touched: map[int64]time.Time{},
	}
}

func (r *Repository) SaveOrder(_ context.Context, order *domain.Order) (*domain.Order, error) {
	if order == nil {
		return nil, errors.New("order is nil")
	}
	clone := cloneOrder(order)
	if err := clone.UpdateStatus(clone.Status); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if clone.ID == 0 {
		r.nextOrder++
		clone.ID = r.nextOrder
	} else if clone.ID > r.nextOrder {
		r.nextOrder = clone.ID
	}
	r.orders[clone.ID] = clone
	r.touched[clone.ID] = time.Now()
	return cloneOrder(clone), nil
}

func (r *Repository) GetOrder(_ context.Context, id int64) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrOrderNotFound
	}
	return cloneOrder(order), nil
}

func (r *Repository) DeleteOrder(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[id]; !ok {
		return ports.ErrOrderNotFound
	}
	delete(r.orders, id)
	delete(r.touched, id)
	for itemID, item := range r.items {
		if item.OrderID == id {
			delete(r.items, itemID)
		}
	}
	return nil
}

func (r *Repository) ListIdleCarts(_ context.Context, cutoff time.Time) ([]*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var idle []*domain.Order
	for id, order := range r.orders {
		if order.Status != domain.StatusCart {
			continue
		}
		if t, ok := r.touched[id]; ok && t.Before(cutoff) {
			idle = append(idle, cloneOrder(order))
		}
	}
	sort.Slice(idle, func(i, j int) bool { return idle[i].ID < idle[j].ID })
	return idle, nil
}

func (r *Repository) SaveItem(_ context.Context, item *domain.Item) (*domain.Item, error) {
	if item == nil {
		return nil, errors.New("item is nil")
	}
	clone := cloneItem(item)
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if clone.ID == 0 {
		r.nextItem++
		clone.ID = r.nextItem
	} else if clone.ID > r.nextItem {
		r.nextItem = clone.ID
	}
	r.items[clone.ID] = clone
	if _, ok := r.orders[clone.OrderID]; ok {
		r.touched[clone.OrderID] = time.Now()
	}
	return cloneItem(clone), nil
}

func (r *Repository) GetItem(_ context.Context, id int64) (*domain.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.items[id]
	if !ok {
		return nil, ports.ErrItemNotFound
	}
	return cloneItem(item), nil
}

func (r *Repository) DeleteItem(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return ports.ErrItemNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *Repository) FindItem(_ context.Context, query ports.ItemQuery) (*domain.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var match *domain.Item
	for _, item := range r.items {
		if !matches(item, query) {
			continue
		}
		// First match by insertion order.
		if match == nil || item.ID < match.ID {
			match = item
		}
	}
	if match == nil {
		return nil, ports.ErrItemNotFound
	}
	return cloneItem(match), nil
}

func (r *Repository) ListItems(_ context.Context, orderID int64) ([]*domain.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var list []*domain.Item
	for _, item := range r.items {
		if item.OrderID == orderID {
			list = append(list, cloneItem(item))
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func matches(item *domain.Item, query ports.ItemQuery) bool {
	if item.OrderID != query.OrderID || item.Relation != query.Relation || item.PurchasableID != query.PurchasableID {
		return false
	}
	for key, value := range query.Attributes {
		if item.Attribute(key) != value {
			return false
		}
	}
	return true
}

func cloneOrder(order *domain.Order) *domain.Order {
	clone := *order
	clone.Items = make([]*domain.Item, 0, len(order.Items))
	for _, item := range order.Items {
		clone.Items = append(clone.Items, cloneItem(item))
	}
	return &clone
}

func cloneItem(item *domain.Item) *domain.Item {
	clone := *item
	if item.Attributes != nil {
		clone.Attributes = make(map[string]string, len(item.Attributes))
		for k, v := range item.Attributes {
			clone.Attributes[k] = v
		}
	}
	return &clone
}
