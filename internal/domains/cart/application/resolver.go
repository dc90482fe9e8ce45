package application

import "github.com/drdrak3/silvershop-core/internal/domains/cart/ports"

// ResolveCanonical maps a requested purchasable to the entity that should
// actually be transacted. A parent carrying purchasable variants that cannot
// itself be bought directly resolves to the first variant passing the
// purchasability check; everything else passes through unchanged. A
// non-positive quantity resolves as a single unit.
func ResolveCanonical(p ports.Purchasable, actor *ports.Actor, quantity int) ports.Purchasable {
	if p == nil {
		return nil
	}
	if quantity <= 0 {
		quantity = 1
	}
	parent, ok := p.(ports.VariantParent)
	if !ok {
		return p
	}
	variants := parent.Variants()
	if len(variants) == 0 || parent.AllowDirectPurchase() {
		return p
	}
	for _, variant := range variants {
		if variant.Purchasable(actor, quantity) {
			return variant
		}
	}
	return p
}
