package ports

import (
	"context"

	"github.com/drdrak3/silvershop-core/internal/domains/cart/domain"
)

// Severity classifies an operation result for rendering.
type Severity string

const (
	SeverityGood    Severity = "good"
	SeverityBad     Severity = "bad"
	SeverityWarning Severity = "warning"
)

// Outcome is the per-operation result channel surfaced to the dispatch layer:
// exactly one (message, severity) pair per mutating call, plus the item the
// operation touched when there is one.
type Outcome struct {
	OK       bool
	Message  string
	Severity Severity
	Item     *domain.Item
}

// CartView is the read model handed to the transport: the bound aggregate
// and its items in insertion order.
type CartView struct {
	Order *domain.Order
	Items []*domain.Item
}

// Service exposes the cart use cases to adapters. Every call is scoped by the
// caller's session key; the implementation rehydrates the bound aggregate per
// call, so no mutable state leaks across requests.
type Service interface {
	Cart(ctx context.Context, session string) (*CartView, error)
	Add(ctx context.Context, session, class string, purchasableID int64, quantity int, filter Filter) (*Outcome, error)
	// Remove subtracts quantity from the matching item; a non-positive
	// quantity removes the item entirely.
	Remove(ctx context.Context, session, class string, purchasableID int64, quantity int, filter Filter) (*Outcome, error)
	SetQuantity(ctx context.Context, session, class string, purchasableID int64, quantity int, filter Filter) (*Outcome, error)
	Clear(ctx context.Context, session string) (*Outcome, error)
	// Archive records a non-cart bound order into session history and, unless
	// a specific different order was requested, clears the binding.
	Archive(ctx context.Context, session string, requestedID int64) (*Outcome, error)
	History(ctx context.Context, session string) ([]int64, error)
}
