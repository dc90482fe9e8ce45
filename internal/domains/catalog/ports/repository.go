package ports

import (
	"context"
	"errors"

	"github.com/drdrak3/silvershop-core/internal/domains/catalog/domain"
)

var ErrNotFound = errors.New("product not found")

// Repository persists catalog products with their variations.
type Repository interface {
	Save(ctx context.Context, product *domain.Product) (*domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	// GetByVariationID returns the variation plus its parent product.
	GetByVariationID(ctx context.Context, id int64) (*domain.Variation, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*domain.Product, error)
}
