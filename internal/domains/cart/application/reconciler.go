package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/drdrak3/silvershop-core/internal/domains/cart/domain"
	"github.com/drdrak3/silvershop-core/internal/domains/cart/ports"
)

// Reconciler locates the line item matching a purchasable plus discriminating
// filter within one aggregate, or constructs a new one. It owns the identity
// predicate; quantity merge semantics stay with the manager.
type Reconciler struct {
	repo    ports.Repository
	classes *ports.ItemClassRegistry
}

func NewReconciler(repo ports.Repository, classes *ports.ItemClassRegistry) *Reconciler {
	return &Reconciler{repo: repo, classes: classes}
}

// Find resolves the purchasable to canonical form and returns the first item
// in the order matching the class relation plus allowlisted filter fields.
// Returns ErrNotFound when nothing matches.
func (r *Reconciler) Find(ctx context.Context, order *domain.Order, actor *ports.Actor, p ports.Purchasable, quantity int, filter ports.Filter) (*domain.Item, error) {
	if order == nil {
		return nil, ErrNoOrder
	}
	canonical := ResolveCanonical(p, actor, quantity)
	if canonical == nil {
		return nil, ErrNotFound
	}
	query, err := r.buildQuery(order, canonical, filter)
	if err != nil {
		return nil, err
	}
	item, err := r.repo.FindItem(ctx, query)
	if err != nil {
		if errors.Is(err, ports.ErrItemNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return item, nil
}

// FindOrMake returns the matching item, or creates, persists, and attaches a
// new one. The boolean reports whether the item is newly created. Creation is
// gated on the purchasability check for the current actor and quantity.
func (r *Reconciler) FindOrMake(ctx context.Context, order *domain.Order, actor *ports.Actor, p ports.Purchasable, quantity int, filter ports.Filter) (*domain.Item, bool, error) {
	if order == nil {
		return nil, false, ErrNoOrder
	}
	canonical := ResolveCanonical(p, actor, quantity)
	if canonical == nil {
		return nil, false, ErrNotFound
	}
	item, err := r.Find(ctx, order, actor, canonical, quantity, filter)
	if err == nil {
		return item, false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, false, err
	}

	if !canonical.Purchasable(actor, quantity) {
		return nil, false, fmt.Errorf("%w: purchasable %d", ErrNotPurchasable, canonical.PurchasableID())
	}
	item, err = canonical.NewItem(quantity)
	if err != nil {
		return nil, false, err
	}
	spec, err := r.classes.Lookup(canonical.ItemClass())
	if err != nil {
		return nil, false, err
	}
	item.OrderID = order.ID
	item.ItemClass = spec.ItemClass
	item.Relation = spec.RelationField
	item.PurchasableID = canonical.PurchasableID()
	if attrs, err := r.classes.AllowedAttributes(spec.ItemClass, filter); err == nil && attrs != nil {
		item.Attributes = attrs
	}
	saved, err := r.repo.SaveItem(ctx, item)
	if err != nil {
		return nil, false, err
	}
	order.AttachItem(saved)
	return saved, true, nil
}

func (r *Reconciler) buildQuery(order *domain.Order, canonical ports.Purchasable, filter ports.Filter) (ports.ItemQuery, error) {
	spec, err := r.classes.Lookup(canonical.ItemClass())
	if err != nil {
		return ports.ItemQuery{}, err
	}
	attrs, err := r.classes.AllowedAttributes(spec.ItemClass, filter)
	if err != nil {
		return ports.ItemQuery{}, err
	}
	return ports.ItemQuery{
		OrderID:       order.ID,
		Relation:      spec.RelationField,
		PurchasableID: canonical.PurchasableID(),
		Attributes:    attrs,
	}, nil
}
