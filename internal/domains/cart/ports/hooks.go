package ports

import (
	"context"

	"github.com/drdrak3/silvershop-core/internal/domains/cart/domain"
)

// HookStage names an extension moment around a cart mutation.
type HookStage string

const (
	HookStartOrder        HookStage = "onStartOrder"
	HookBeforeAdd         HookStage = "beforeAdd"
	HookAfterAdd          HookStage = "afterAdd"
	HookBeforeRemove      HookStage = "beforeRemove"
	HookAfterRemove       HookStage = "afterRemove"
	HookBeforeSetQuantity HookStage = "beforeSetQuantity"
	HookAfterSetQuantity  HookStage = "afterSetQuantity"
)

// HookContext carries the state of the mutation being observed. Fields not
// meaningful for a stage are left zero, e.g. Item is nil before an add.
type HookContext struct {
	Order       *domain.Order
	Item        *domain.Item
	Purchasable Purchasable
	Quantity    int
	Filter      Filter
}

// Hook observes one stage. Returning an error vetoes the operation; the
// error message is surfaced verbatim to the caller.
type Hook func(ctx context.Context, hc HookContext) error

// HookDispatcher invokes the hooks registered for a stage in registration
// order, stopping at the first failure.
type HookDispatcher interface {
	Fire(ctx context.Context, stage HookStage, hc HookContext) error
}
