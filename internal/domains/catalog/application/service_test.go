package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	catalogmemory "github.com/drdrak3/silvershop-core/internal/domains/catalog/adapters/memory"
	"github.com/drdrak3/silvershop-core/internal/domains/catalog/domain"
	"github.com/drdrak3/silvershop-core/internal/domains/catalog/ports"
)

func testProduct() *domain.Product {
	return &domain.Product{
		ID:            1,
		Title:         "Tee",
		SKU:           "TEE-1",
		Price:         1500,
		AllowPurchase: true,
		Variations: []*domain.Variation{
			{ID: 10, Title: "Small", Price: 1500, AllowPurchase: true},
			{ID: 11, Title: "Large", Price: 1600, AllowPurchase: true},
		},
	}
}

func TestAddProduct_Valid(t *testing.T) {
	svc := NewService(catalogmemory.NewRepository())

	saved, err := svc.AddProduct(context.Background(), testProduct())
	require.NoError(t, err)
	require.Equal(t, int64(1), saved.ID)

	loaded, err := svc.GetProduct(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, "Tee", loaded.Title)
	require.Len(t, loaded.Variations, 2)
}

func TestAddProduct_Invalid(t *testing.T) {
	svc := NewService(catalogmemory.NewRepository())

	_, err := svc.AddProduct(context.Background(), &domain.Product{ID: 1, Price: 100})
	require.ErrorIs(t, err, domain.ErrInvalidTitle)

	_, err = svc.AddProduct(context.Background(), &domain.Product{ID: 1, Title: "Tee", Price: -5})
	require.ErrorIs(t, err, domain.ErrInvalidPrice)
}

func TestDeleteProduct(t *testing.T) {
	svc := NewService(catalogmemory.NewRepository())
	_, err := svc.AddProduct(context.Background(), testProduct())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProduct(context.Background(), 1))
	_, err = svc.GetProduct(context.Background(), 1)
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestPurchasable_ResolvesProduct(t *testing.T) {
	svc := NewService(catalogmemory.NewRepository())
	_, err := svc.AddProduct(context.Background(), testProduct())
	require.NoError(t, err)

	p, err := svc.Purchasable(context.Background(), domain.ItemClassProduct, 1)
	require.NoError(t, err)
	require.NotNil(t, p)
	require.Equal(t, int64(1), p.PurchasableID())
	require.Equal(t, domain.ItemClassProduct, p.ItemClass())
}

func TestPurchasable_EmptyClassMeansProduct(t *testing.T) {
	svc := NewService(catalogmemory.NewRepository())
	_, err := svc.AddProduct(context.Background(), testProduct())
	require.NoError(t, err)

	p, err := svc.Purchasable(context.Background(), "", 1)
	require.NoError(t, err)
	require.NotNil(t, p)
}

func TestPurchasable_ResolvesVariation(t *testing.T) {
	svc := NewService(catalogmemory.NewRepository())
	_, err := svc.AddProduct(context.Background(), testProduct())
	require.NoError(t, err)

	p, err := svc.Purchasable(context.Background(), domain.ItemClassVariation, 11)
	require.NoError(t, err)
	require.NotNil(t, p)
	require.Equal(t, int64(11), p.PurchasableID())
	require.Equal(t, domain.ItemClassVariation, p.ItemClass())
}

func TestPurchasable_MissingIsNilNil(t *testing.T) {
	svc := NewService(catalogmemory.NewRepository())

	p, err := svc.Purchasable(context.Background(), domain.ItemClassProduct, 99)
	require.NoError(t, err)
	require.Nil(t, p)
}

func TestPurchasable_UnknownClass(t *testing.T) {
	svc := NewService(catalogmemory.NewRepository())

	_, err := svc.Purchasable(context.Background(), "mystery", 1)
	require.Error(t, err)
}
