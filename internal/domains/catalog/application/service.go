package application

import (
	"context"
	"errors"
	"fmt"

	cartports "github.com/drdrak3/silvershop-core/internal/domains/cart/ports"
	"github.com/drdrak3/silvershop-core/internal/domains/catalog/domain"
	"github.com/drdrak3/silvershop-core/internal/domains/catalog/ports"
)

// Service exposes catalog use cases and doubles as the cart's purchasable
// source: it resolves (item class, id) references to concrete purchasables.
type Service struct {
	repo ports.Repository
}

var _ cartports.PurchasableSource = (*Service)(nil)

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

// AddProduct persists a new or updated product.
func (s *Service) AddProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if product == nil {
		return nil, errors.New("product is nil")
	}
	if err := product.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Save(ctx, product)
}

// GetProduct loads a product by identifier.
func (s *Service) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// DeleteProduct removes a product.
func (s *Service) DeleteProduct(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// ListProducts returns the whole catalog.
func (s *Service) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	return s.repo.List(ctx)
}

// Purchasable resolves a transport-level reference for the cart. Unknown
// entities yield (nil, nil) so the cart reports its own not-found result.
func (s *Service) Purchasable(ctx context.Context, class string, id int64) (cartports.Purchasable, error) {
	switch class {
	case domain.ItemClassProduct, "":
		product, err := s.repo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, ports.ErrNotFound) {
				return nil, nil
			}
			return nil, err
		}
		return product, nil
	case domain.ItemClassVariation:
		variation, err := s.repo.GetByVariationID(ctx, id)
		if err != nil {
			if errors.Is(err, ports.ErrNotFound) {
				return nil, nil
			}
			return nil, err
		}
		return variation, nil
	default:
		return nil, fmt.Errorf("unknown purchasable class %q", class)
	}
}
