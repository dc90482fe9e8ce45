package domain

import (
	"errors"

	cartdomain "github.com/drdrak3/silvershop-core/internal/domains/cart/domain"
	cartports "github.com/drdrak3/silvershop-core/internal/domains/cart/ports"
)

// Item class tags and the relationship field names their line items match on.
const (
	ItemClassProduct   = "product"
	ItemClassVariation = "product_variation"

	RelationProduct   = "product_id"
	RelationVariation = "product_variation_id"
)

var (
	ErrInvalidTitle = errors.New("product title is required")
	ErrInvalidPrice = errors.New("product price must not be negative")
)

// DefaultItemClasses is the capability table for the catalog purchasables,
// assembled at startup and handed to the cart core.
func DefaultItemClasses() *cartports.ItemClassRegistry {
	return cartports.NewItemClassRegistry(
		cartports.ItemClassSpec{ItemClass: ItemClassProduct, RelationField: RelationProduct},
		cartports.ItemClassSpec{ItemClass: ItemClassVariation, RelationField: RelationVariation},
	)
}

// Product is a sellable catalog entry. A product carrying variations is only
// directly purchasable when AllowDirectSale is set; otherwise the cart
// resolves one of its variations instead.
type Product struct {
	ID              int64
	Title           string
	SKU             string
	Price           int64 // cents
	AllowPurchase   bool
	AllowDirectSale bool
	Stock           int
	ImageURLs       []string
	TagNames        []string
	Variations      []*Variation
}

// NewProduct validates and constructs a product.
func NewProduct(id int64, title string, price int64) (*Product, error) {
	product := &Product{ID: id, Title: title, Price: price, AllowPurchase: true, AllowDirectSale: true}
	if err := product.Validate(); err != nil {
		return nil, err
	}
	return product, nil
}

// Validate enforces invariants on the product.
func (p *Product) Validate() error {
	if p.Title == "" {
		return ErrInvalidTitle
	}
	if p.Price < 0 {
		return ErrInvalidPrice
	}
	for _, variation := range p.Variations {
		if err := variation.Validate(); err != nil {
			return err
		}
	}
	return nil
}

var (
	_ cartports.Purchasable   = (*Product)(nil)
	_ cartports.VariantParent = (*Product)(nil)
)

func (p *Product) PurchasableID() int64 { return p.ID }

func (p *Product) ItemClass() string { return ItemClassProduct }

// Purchasable reports whether the actor may buy the quantity. Stock zero
// means untracked inventory.
func (p *Product) Purchasable(_ *cartports.Actor, quantity int) bool {
	if !p.AllowPurchase || quantity <= 0 {
		return false
	}
	if p.Stock > 0 && quantity > p.Stock {
		return false
	}
	return true
}

// NewItem produces an unsaved line item with the current price snapshot.
func (p *Product) NewItem(quantity int) (*cartdomain.Item, error) {
	if quantity <= 0 {
		return nil, cartdomain.ErrInvalidQuantity
	}
	return &cartdomain.Item{
		ItemClass:     ItemClassProduct,
		Relation:      RelationProduct,
		PurchasableID: p.ID,
		Quantity:      quantity,
		UnitPrice:     p.Price,
	}, nil
}

// AllowDirectPurchase reports whether the parent itself may be transacted
// even when variations exist.
func (p *Product) AllowDirectPurchase() bool { return p.AllowDirectSale }

// Variants exposes the purchasable variations.
func (p *Product) Variants() []cartports.Purchasable {
	if len(p.Variations) == 0 {
		return nil
	}
	variants := make([]cartports.Purchasable, 0, len(p.Variations))
	for _, variation := range p.Variations {
		variants = append(variants, variation)
	}
	return variants
}

// Variation is a concrete purchasable variant of a product, e.g. a size.
type Variation struct {
	ID            int64
	ProductID     int64
	Title         string
	SKU           string
	Price         int64
	AllowPurchase bool
	Stock         int
}

var _ cartports.Purchasable = (*Variation)(nil)

// Validate enforces invariants on the variation.
func (v *Variation) Validate() error {
	if v.Title == "" {
		return ErrInvalidTitle
	}
	if v.Price < 0 {
		return ErrInvalidPrice
	}
	return nil
}

func (v *Variation) PurchasableID() int64 { return v.ID }

func (v *Variation) ItemClass() string { return ItemClassVariation }

func (v *Variation) Purchasable(_ *cartports.Actor, quantity int) bool {
	if !v.AllowPurchase || quantity <= 0 {
		return false
	}
	if v.Stock > 0 && quantity > v.Stock {
		return false
	}
	return true
}

func (v *Variation) NewItem(quantity int) (*cartdomain.Item, error) {
	if quantity <= 0 {
		return nil, cartdomain.ErrInvalidQuantity
	}
	return &cartdomain.Item{
		ItemClass:     ItemClassVariation,
		Relation:      RelationVariation,
		PurchasableID: v.ID,
		Quantity:      quantity,
		UnitPrice:     v.Price,
	}, nil
}
