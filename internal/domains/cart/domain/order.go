package domain

import "errors"

// Status enumerates order progression. Only StatusCart is mutable by the
// cart bounded context; every later status belongs to checkout and history.
type Status string

const (
	StatusCart      Status = "cart"
	StatusPlaced    Status = "placed"
	StatusPaid      Status = "paid"
	StatusSent      Status = "sent"
	StatusComplete  Status = "complete"
	StatusArchived  Status = "archived"
	StatusCancelled Status = "cancelled"
)

var (
	ErrInvalidStatus = errors.New("order status is invalid")
	ErrNotMutable    = errors.New("order is no longer in cart status")
)

// Order models the in-progress purchase aggregate. While in cart status it is
// the single consistency unit for all line-item mutations bound to a session.
type Order struct {
	ID       int64
	Status   Status
	OwnerID  int64 // zero when the cart belongs to an anonymous session
	Items    []*Item
	Subtotal int64
	Total    int64
}

// NewCart constructs a fresh mutable order without an identity; the record
// store assigns one on first save.
func NewCart() *Order {
	return &Order{Status: StatusCart}
}

// IsCart reports whether the aggregate is still in its mutable phase.
func (o *Order) IsCart() bool {
	return o != nil && o.Status == StatusCart
}

// UpdateStatus ensures only known states are accepted and defaults to cart.
func (o *Order) UpdateStatus(status Status) error {
	if status == "" {
		status = StatusCart
	}
	if !isValidStatus(status) {
		return ErrInvalidStatus
	}
	o.Status = status
	return nil
}

// AttachItem appends an item to the aggregate's collection, replacing a
// previous entry with the same identity. Insertion order is preserved.
func (o *Order) AttachItem(item *Item) {
	if item == nil {
		return
	}
	for i, existing := range o.Items {
		if existing.ID == item.ID {
			o.Items[i] = item
			return
		}
	}
	o.Items = append(o.Items, item)
}

// DetachItem removes an item from the in-memory collection by identity.
func (o *Order) DetachItem(id int64) {
	for i, existing := range o.Items {
		if existing.ID == id {
			o.Items = append(o.Items[:i], o.Items[i+1:]...)
			return
		}
	}
}

// Recalculate recomputes the money totals from the attached items. Tax and
// shipping modifiers live outside this context, so total equals subtotal here.
func (o *Order) Recalculate() {
	var subtotal int64
	for _, item := range o.Items {
		subtotal += item.LineTotal()
	}
	o.Subtotal = subtotal
	o.Total = subtotal
}

func isValidStatus(status Status) bool {
	switch status {
	case StatusCart, StatusPlaced, StatusPaid, StatusSent, StatusComplete, StatusArchived, StatusCancelled:
		return true
	default:
		return false
	}
}
