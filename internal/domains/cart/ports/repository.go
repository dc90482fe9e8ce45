package ports

import (
	"context"
	"errors"
	"time"

	"github.com/drdrak3/silvershop-core/internal/domains/cart/domain"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrItemNotFound  = errors.New("order item not found")
)

// ItemQuery is the equality predicate used to locate an existing line item
// within one aggregate: the relationship field declared by the item class
// equal to the purchasable's identity, plus any allowlisted attributes.
type ItemQuery struct {
	OrderID       int64
	Relation      string
	PurchasableID int64
	Attributes    map[string]string
}

// Repository persists order aggregates and their line items. Implementations
// must provide atomic single-record writes; no cross-aggregate transactions
// are required by the cart core.
type Repository interface {
	SaveOrder(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetOrder(ctx context.Context, id int64) (*domain.Order, error)
	DeleteOrder(ctx context.Context, id int64) error
	// ListIdleCarts returns cart-status orders untouched since the cutoff,
	// for housekeeping.
	ListIdleCarts(ctx context.Context, cutoff time.Time) ([]*domain.Order, error)

	SaveItem(ctx context.Context, item *domain.Item) (*domain.Item, error)
	GetItem(ctx context.Context, id int64) (*domain.Item, error)
	DeleteItem(ctx context.Context, id int64) error
	// FindItem returns the first item matching the predicate, or
	// ErrItemNotFound.
	FindItem(ctx context.Context, query ItemQuery) (*domain.Item, error)
	// ListItems returns an order's items in insertion order.
	ListItems(ctx context.Context, orderID int64) ([]*domain.Item, error)
}
