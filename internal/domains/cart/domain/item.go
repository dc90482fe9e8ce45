package domain

import "errors"

var (
	ErrInvalidQuantity = errors.New("item quantity must be greater than zero")
	ErrMissingRelation = errors.New("item is missing its purchasable relation")
)

// Item is a quantity of one purchasable within a single order aggregate.
// Identity for matching purposes is (OrderID, Relation, PurchasableID) plus
// any discriminating attributes declared required by the item class, so two
// adds with different attribute sets yield two distinct items.
type Item struct {
	ID            int64
	OrderID       int64
	ItemClass     string
	Relation      string // relationship field name declared by the item class
	PurchasableID int64
	Quantity      int
	UnitPrice     int64 // snapshot in cents at the time the item was created
	Attributes    map[string]string
}

// Validate enforces invariants before the item may be persisted. Quantities
// at or below zero are never stored; such items are deleted instead.
func (i *Item) Validate() error {
	if i.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	if i.Relation == "" || i.PurchasableID <= 0 {
		return ErrMissingRelation
	}
	return nil
}

// LineTotal returns the item's contribution to the order subtotal.
func (i *Item) LineTotal() int64 {
	return i.UnitPrice * int64(i.Quantity)
}

// Attribute reads a discriminating attribute, blank when unset.
func (i *Item) Attribute(key string) string {
	if i.Attributes == nil {
		return ""
	}
	return i.Attributes[key]
}
