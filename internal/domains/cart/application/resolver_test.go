package application

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/drdrak3/silvershop-core/internal/domains/cart/ports"
)

func TestResolveCanonical_PassThrough(t *testing.T) {
	w := newWidget(7)
	require.Equal(t, ports.Purchasable(w), ResolveCanonical(w, nil, 1))
}

func TestResolveCanonical_Nil(t *testing.T) {
	require.Nil(t, ResolveCanonical(nil, nil, 1))
}

func TestResolveCanonical_ParentWithoutVariants(t *testing.T) {
	parent := &widgetParent{widget: *newWidget(7)}
	require.Equal(t, ports.Purchasable(parent), ResolveCanonical(parent, nil, 1))
}

func TestResolveCanonical_DirectSaleWins(t *testing.T) {
	parent := &widgetParent{
		widget:     *newWidget(7),
		variants:   []ports.Purchasable{newWidget(21)},
		directSale: true,
	}
	require.Equal(t, ports.Purchasable(parent), ResolveCanonical(parent, nil, 1))
}

func TestResolveCanonical_FirstSellableVariant(t *testing.T) {
	soldOut := newWidget(20)
	soldOut.sellable = false
	sellable := newWidget(21)
	parent := &widgetParent{
		widget:   *newWidget(7),
		variants: []ports.Purchasable{soldOut, sellable},
	}
	require.Equal(t, ports.Purchasable(sellable), ResolveCanonical(parent, nil, 1))
}

func TestResolveCanonical_ZeroQuantityResolvesVariant(t *testing.T) {
	variant := newWidget(21)
	parent := &widgetParent{
		widget:   *newWidget(7),
		variants: []ports.Purchasable{variant},
	}
	require.Equal(t, ports.Purchasable(variant), ResolveCanonical(parent, nil, 0))
}

func TestResolveCanonical_NoSellableVariantFallsBack(t *testing.T) {
	soldOut := newWidget(20)
	soldOut.sellable = false
	parent := &widgetParent{
		widget:   *newWidget(7),
		variants: []ports.Purchasable{soldOut},
	}
	require.Equal(t, ports.Purchasable(parent), ResolveCanonical(parent, nil, 1))
}
