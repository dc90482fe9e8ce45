package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProductPurchasable(t *testing.T) {
	product := &Product{ID: 1, Title: "Tee", Price: 1500, AllowPurchase: true}

	actorless := product.Purchasable(nil, 1)
	require.True(t, actorless)
	require.False(t, product.Purchasable(nil, 0))

	product.AllowPurchase = false
	require.False(t, product.Purchasable(nil, 1))
}

func TestProductStockLimit(t *testing.T) {
	product := &Product{ID: 1, Title: "Tee", Price: 1500, AllowPurchase: true, Stock: 3}

	require.True(t, product.Purchasable(nil, 3))
	require.False(t, product.Purchasable(nil, 4))

	// Zero stock means untracked inventory.
	product.Stock = 0
	require.True(t, product.Purchasable(nil, 100))
}

func TestProductNewItemSnapshotsPrice(t *testing.T) {
	product := &Product{ID: 1, Title: "Tee", Price: 1500, AllowPurchase: true}

	item, err := product.NewItem(2)
	require.NoError(t, err)
	require.Equal(t, int64(1500), item.UnitPrice)
	require.Equal(t, RelationProduct, item.Relation)
	require.Equal(t, int64(1), item.PurchasableID)

	_, err = product.NewItem(0)
	require.Error(t, err)
}

func TestProductVariants(t *testing.T) {
	product := &Product{
		ID: 1, Title: "Tee", Price: 1500, AllowPurchase: true,
		Variations: []*Variation{{ID: 10, Title: "Small", Price: 1500, AllowPurchase: true}},
	}

	variants := product.Variants()
	require.Len(t, variants, 1)
	require.Equal(t, int64(10), variants[0].PurchasableID())
	require.Equal(t, ItemClassVariation, variants[0].ItemClass())

	product.Variations = nil
	require.Nil(t, product.Variants())
}

func TestVariationNewItem(t *testing.T) {
	variation := &Variation{ID: 10, Title: "Small", Price: 1600, AllowPurchase: true}

	item, err := variation.NewItem(3)
	require.NoError(t, err)
	require.Equal(t, RelationVariation, item.Relation)
	require.Equal(t, int64(10), item.PurchasableID)
	require.Equal(t, int64(1600), item.UnitPrice)
}

func TestValidate(t *testing.T) {
	require.ErrorIs(t, (&Product{Price: 100}).Validate(), ErrInvalidTitle)
	require.ErrorIs(t, (&Product{Title: "Tee", Price: -1}).Validate(), ErrInvalidPrice)

	withBadVariation := &Product{
		Title: "Tee", Price: 100,
		Variations: []*Variation{{Price: 100}},
	}
	require.ErrorIs(t, withBadVariation.Validate(), ErrInvalidTitle)
}
