package ports

import (
	"context"
	"errors"
	"sort"

	"github.com/drdrak3/silvershop-core/internal/domains/cart/domain"
)

// Filter carries caller-supplied discriminating attributes for an add or
// lookup, e.g. chosen options. Only keys declared required by the item class
// participate in identity matching.
type Filter map[string]string

// Purchasable is any sellable entity capable of producing a line item and
// being purchasability-checked. Implementations live outside this context.
type Purchasable interface {
	// PurchasableID is the entity's persistent identity.
	PurchasableID() int64
	// ItemClass tags the line-item class this entity transacts as; the tag
	// must be registered in the ItemClassRegistry.
	ItemClass() string
	// Purchasable reports whether the given actor may buy the given quantity.
	Purchasable(actor *Actor, quantity int) bool
	// NewItem constructs an unsaved line item for this entity.
	NewItem(quantity int) (*domain.Item, error)
}

// VariantParent is implemented by purchasables that carry sub-variants.
// When direct purchase is disallowed the resolver transacts a variant instead.
type VariantParent interface {
	Variants() []Purchasable
	AllowDirectPurchase() bool
}

// PurchasableSource resolves a transport-level (class, id) reference to a
// concrete purchasable. A nil result with nil error means the entity is gone.
type PurchasableSource interface {
	Purchasable(ctx context.Context, class string, id int64) (Purchasable, error)
}

// ErrUnknownItemClass signals a purchasable whose class was never registered.
var ErrUnknownItemClass = errors.New("item class is not registered")

// ItemClassSpec is one row of the capability table: the static metadata a
// purchasable type declares about its line items.
type ItemClassSpec struct {
	ItemClass      string
	RelationField  string
	RequiredFields []string
}

// ItemClassRegistry maps purchasable type tags to their line-item metadata.
// It is assembled once at startup; lookups never touch reflection.
type ItemClassRegistry struct {
	specs map[string]ItemClassSpec
}

// NewItemClassRegistry builds a registry from the given specs. Later specs
// with a duplicate tag overwrite earlier ones.
func NewItemClassRegistry(specs ...ItemClassSpec) *ItemClassRegistry {
	r := &ItemClassRegistry{specs: make(map[string]ItemClassSpec, len(specs))}
	for _, spec := range specs {
		r.specs[spec.ItemClass] = spec
	}
	return r
}

// Lookup returns the spec for an item class tag.
func (r *ItemClassRegistry) Lookup(itemClass string) (ItemClassSpec, error) {
	if r != nil {
		if spec, ok := r.specs[itemClass]; ok {
			return spec, nil
		}
	}
	return ItemClassSpec{}, ErrUnknownItemClass
}

// AllowedAttributes restricts a caller filter to the required-field allowlist
// of the item class. Keys outside the allowlist are dropped.
func (r *ItemClassRegistry) AllowedAttributes(itemClass string, filter Filter) (map[string]string, error) {
	spec, err := r.Lookup(itemClass)
	if err != nil {
		return nil, err
	}
	if len(spec.RequiredFields) == 0 || len(filter) == 0 {
		return nil, nil
	}
	allowed := make(map[string]string)
	for _, field := range spec.RequiredFields {
		if value, ok := filter[field]; ok {
			allowed[field] = value
		}
	}
	if len(allowed) == 0 {
		return nil, nil
	}
	return allowed, nil
}

// Classes lists the registered tags in stable order, mostly for diagnostics.
func (r *ItemClassRegistry) Classes() []string {
	if r == nil {
		return nil
	}
	classes := make([]string, 0, len(r.specs))
	for class := range r.specs {
		classes = append(classes, class)
	}
	sort.Strings(classes)
	return classes
}
