package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/drdrak3/silvershop-core/internal/domains/cart/domain"
	"github.com/drdrak3/silvershop-core/internal/domains/cart/ports"
)

// Config carries the explicit policy toggles the manager consults. No global
// lookups: the constructor receives everything.
type Config struct {
	// AttachOwnerOnStart attaches the current actor as the order owner when a
	// cart is first created.
	AttachOwnerOnStart bool
}

// Deps bundles the collaborators shared by all managers in a process.
type Deps struct {
	Repo     ports.Repository
	Binding  ports.SessionBinding
	History  ports.HistoryStore
	Hooks    ports.HookDispatcher
	Identity ports.Identity
	Classes  *ports.ItemClassRegistry
	Locks    *LockTable
	Config   Config
}

// Manager is the request-scoped cart façade. Construct one per incoming
// request; it rehydrates the bound aggregate from the session binding, drives
// the mutations, and keeps the last operation result for rendering. It is not
// safe for use from multiple goroutines.
type Manager struct {
	session    string
	deps       Deps
	reconciler *Reconciler
	archival   *ArchivalCoordinator

	current    *domain.Order
	calculated bool
	result     *Result
}

// NewManager builds a manager for one session-scoped request lifetime.
func NewManager(session string, deps Deps) *Manager {
	if deps.Binding == nil {
		deps.Binding = ports.NoopSessionBinding
	}
	if deps.Identity == nil {
		deps.Identity = ports.AnonymousIdentity
	}
	if deps.Hooks == nil {
		deps.Hooks = NewHooks()
	}
	return &Manager{
		session:    session,
		deps:       deps,
		reconciler: NewReconciler(deps.Repo, deps.Classes),
		archival:   NewArchivalCoordinator(deps.History),
	}
}

// Session returns the session key this manager is bound to.
func (m *Manager) Session() string { return m.session }

// Current returns the bound aggregate when the session binding resolves to an
// order still in cart status, else nil. The first successful resolution per
// manager instance triggers one total recalculation; repeated reads reuse it.
func (m *Manager) Current(ctx context.Context) (*domain.Order, error) {
	if m.current == nil {
		order, err := m.loadBound(ctx)
		if err != nil {
			return nil, err
		}
		if order == nil || !order.IsCart() {
			return nil, nil
		}
		m.current = order
	}
	if !m.current.IsCart() {
		return nil, nil
	}
	if !m.calculated {
		if err := m.recalculate(ctx, m.current); err != nil {
			return nil, err
		}
		m.calculated = true
	}
	return m.current, nil
}

// SetCurrent replaces the bound aggregate. Binding anything that is not in
// cart status is a programming error and fails hard with ErrInvalidState.
func (m *Manager) SetCurrent(ctx context.Context, order *domain.Order) error {
	if order == nil || !order.IsCart() {
		return ErrInvalidState
	}
	if err := m.deps.Binding.Set(ctx, m.session, order.ID); err != nil {
		return err
	}
	m.current = order
	return nil
}

// findOrMake is the single creation path for cart-status aggregates.
func (m *Manager) findOrMake(ctx context.Context) (*domain.Order, error) {
	order, err := m.Current(ctx)
	if err != nil {
		return nil, err
	}
	if order != nil {
		return order, nil
	}
	order = domain.NewCart()
	actor := m.deps.Identity.CurrentActor(ctx)
	if actor != nil && m.deps.Config.AttachOwnerOnStart {
		order.OwnerID = actor.ID
	}
	saved, err := m.deps.Repo.SaveOrder(ctx, order)
	if err != nil {
		return nil, err
	}
	if err := m.deps.Hooks.Fire(ctx, ports.HookStartOrder, ports.HookContext{Order: saved}); err != nil {
		return nil, m.hookAborted(err)
	}
	if err := m.deps.Binding.Set(ctx, m.session, saved.ID); err != nil {
		return nil, err
	}
	m.current = saved
	m.calculated = true // a fresh cart has nothing to recalculate
	return saved, nil
}

// Add puts quantity of the purchasable into the cart, creating the aggregate
// and the line item as needed. Adding to an existing item accumulates.
func (m *Manager) Add(ctx context.Context, p ports.Purchasable, quantity int, filter ports.Filter) (*domain.Item, error) {
	if quantity <= 0 {
		quantity = 1
	}
	order, err := m.findOrMake(ctx)
	if err != nil {
		return nil, m.fail(err)
	}
	if err := m.deps.Hooks.Fire(ctx, ports.HookBeforeAdd, ports.HookContext{Order: order, Purchasable: p, Quantity: quantity, Filter: filter}); err != nil {
		return nil, m.fail(m.hookAborted(err))
	}
	if p == nil {
		return nil, m.fail(fmt.Errorf("%w: no purchasable given", ErrNotFound))
	}

	release := m.deps.Locks.Acquire(order.ID)
	defer release()

	actor := m.deps.Identity.CurrentActor(ctx)
	item, isNew, err := m.reconciler.FindOrMake(ctx, order, actor, p, quantity, filter)
	if err != nil {
		return nil, m.fail(err)
	}
	if isNew {
		item.Quantity = quantity
	} else {
		item.Quantity += quantity
	}
	if err := m.deps.Hooks.Fire(ctx, ports.HookAfterAdd, ports.HookContext{Order: order, Item: item, Purchasable: p, Quantity: quantity, Filter: filter}); err != nil {
		return nil, m.fail(m.hookAborted(err))
	}
	saved, err := m.deps.Repo.SaveItem(ctx, item)
	if err != nil {
		return nil, m.fail(err)
	}
	order.AttachItem(saved)
	m.good("item added to cart")
	return saved, nil
}

// Remove subtracts quantity from the matching item, deleting it when the
// quantity is non-positive or would not leave a positive remainder.
func (m *Manager) Remove(ctx context.Context, p ports.Purchasable, quantity int, filter ports.Filter) error {
	order, err := m.Current(ctx)
	if err != nil {
		return m.fail(err)
	}
	if order == nil {
		return m.fail(ErrNoOrder)
	}
	if err := m.deps.Hooks.Fire(ctx, ports.HookBeforeRemove, ports.HookContext{Order: order, Purchasable: p, Quantity: quantity, Filter: filter}); err != nil {
		return m.fail(m.hookAborted(err))
	}
	release := m.deps.Locks.Acquire(order.ID)
	defer release()

	// Read under the lock so concurrent removes see each other's writes.
	item, err := m.Get(ctx, p, filter)
	if err != nil {
		return m.fail(err)
	}
	if err := m.removeOrderItem(ctx, order, item, quantity); err != nil {
		return m.fail(err)
	}
	if err := m.deps.Hooks.Fire(ctx, ports.HookAfterRemove, ports.HookContext{Order: order, Item: item, Purchasable: p, Quantity: quantity, Filter: filter}); err != nil {
		// The mutation already stands; no compensating rollback is performed.
		return m.fail(m.hookAborted(err))
	}
	m.good("item removed from cart")
	return nil
}

// RemoveOrderItem reduces or deletes an item that belongs to the current
// aggregate. A non-positive quantity deletes the item entirely.
func (m *Manager) RemoveOrderItem(ctx context.Context, item *domain.Item, quantity int) error {
	order, err := m.Current(ctx)
	if err != nil {
		return m.fail(err)
	}
	if order == nil {
		return m.fail(ErrNoOrder)
	}
	release := m.deps.Locks.Acquire(order.ID)
	defer release()
	if err := m.removeOrderItem(ctx, order, item, quantity); err != nil {
		return m.fail(err)
	}
	m.good("item removed from cart")
	return nil
}

func (m *Manager) removeOrderItem(ctx context.Context, order *domain.Order, item *domain.Item, quantity int) error {
	if item == nil || item.OrderID != order.ID {
		return fmt.Errorf("%w: item does not belong to the current order", ErrNotFound)
	}
	if quantity <= 0 || item.Quantity-quantity <= 0 {
		if err := m.deps.Repo.DeleteItem(ctx, item.ID); err != nil {
			return err
		}
		order.DetachItem(item.ID)
		return nil
	}
	item.Quantity -= quantity
	saved, err := m.deps.Repo.SaveItem(ctx, item)
	if err != nil {
		return err
	}
	order.AttachItem(saved)
	return nil
}

// SetQuantity overwrites the matching item's quantity. Zero or less delegates
// to Remove and carries remove's success semantics.
func (m *Manager) SetQuantity(ctx context.Context, p ports.Purchasable, quantity int, filter ports.Filter) (*domain.Item, error) {
	if quantity <= 0 {
		return nil, m.Remove(ctx, p, 0, filter)
	}
	order, err := m.findOrMake(ctx)
	if err != nil {
		return nil, m.fail(err)
	}

	release := m.deps.Locks.Acquire(order.ID)
	defer release()

	actor := m.deps.Identity.CurrentActor(ctx)
	item, _, err := m.reconciler.FindOrMake(ctx, order, actor, p, quantity, filter)
	if err != nil {
		return nil, m.fail(err)
	}
	if err := m.updateOrderItemQuantity(ctx, order, item, quantity, p, filter); err != nil {
		return nil, m.fail(err)
	}
	m.good("quantity set")
	return item, nil
}

// UpdateOrderItemQuantity overwrites the quantity of an item already attached
// to the current aggregate, firing the set-quantity hooks around the write.
func (m *Manager) UpdateOrderItemQuantity(ctx context.Context, item *domain.Item, quantity int) error {
	order, err := m.Current(ctx)
	if err != nil {
		return m.fail(err)
	}
	if order == nil {
		return m.fail(ErrNoOrder)
	}
	release := m.deps.Locks.Acquire(order.ID)
	defer release()
	if err := m.updateOrderItemQuantity(ctx, order, item, quantity, nil, nil); err != nil {
		return m.fail(err)
	}
	m.good("quantity set")
	return nil
}

func (m *Manager) updateOrderItemQuantity(ctx context.Context, order *domain.Order, item *domain.Item, quantity int, p ports.Purchasable, filter ports.Filter) error {
	if item == nil || item.OrderID != order.ID {
		return fmt.Errorf("%w: item does not belong to the current order", ErrNotFound)
	}
	hc := ports.HookContext{Order: order, Item: item, Purchasable: p, Quantity: quantity, Filter: filter}
	if err := m.deps.Hooks.Fire(ctx, ports.HookBeforeSetQuantity, hc); err != nil {
		return m.hookAborted(err)
	}
	item.Quantity = quantity
	if err := m.deps.Hooks.Fire(ctx, ports.HookAfterSetQuantity, hc); err != nil {
		return m.hookAborted(err)
	}
	saved, err := m.deps.Repo.SaveItem(ctx, item)
	if err != nil {
		return err
	}
	order.AttachItem(saved)
	return nil
}

// Get locates the existing line item for a purchasable plus filter, without
// creating anything.
func (m *Manager) Get(ctx context.Context, p ports.Purchasable, filter ports.Filter) (*domain.Item, error) {
	order, err := m.Current(ctx)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNoOrder
	}
	if p == nil {
		return nil, ErrNotFound
	}
	actor := m.deps.Identity.CurrentActor(ctx)
	return m.reconciler.Find(ctx, order, actor, p, 0, filter)
}

// Clear empties the session binding unconditionally and releases the
// in-memory aggregate. When persist is set the detached aggregate is written
// once more before release.
func (m *Manager) Clear(ctx context.Context, persist bool) error {
	order, err := m.Current(ctx)
	if err != nil {
		return m.fail(err)
	}
	if clearErr := m.deps.Binding.Clear(ctx, m.session); clearErr != nil {
		return m.fail(clearErr)
	}
	if order == nil {
		// The binding clear above still took effect.
		return m.fail(ErrNoCartFound)
	}
	m.current = nil
	m.calculated = false
	if persist {
		if _, err := m.deps.Repo.SaveOrder(ctx, order); err != nil {
			return m.fail(err)
		}
	}
	m.good("cart cleared")
	return nil
}

// ArchiveCurrentSession records a bound non-cart order into session history,
// then clears the cart unless the caller asked about a specific order other
// than the bound one. That guard keeps inspection of historical orders from
// wiping a live binding.
func (m *Manager) ArchiveCurrentSession(ctx context.Context, requestedID int64) error {
	order, err := m.loadBound(ctx)
	if err != nil {
		return m.fail(err)
	}
	if order != nil && !order.IsCart() {
		if err := m.archival.Record(ctx, m.session, order); err != nil {
			return m.fail(err)
		}
	}
	if requestedID == 0 || (order != nil && order.ID == requestedID) {
		return m.Clear(ctx, true)
	}
	m.good("order archived")
	return nil
}

// Items returns the current aggregate's line items in insertion order.
func (m *Manager) Items(ctx context.Context) ([]*domain.Item, error) {
	order, err := m.Current(ctx)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, nil
	}
	return m.deps.Repo.ListItems(ctx, order.ID)
}

// loadBound resolves the session binding to its order, ignoring status.
func (m *Manager) loadBound(ctx context.Context) (*domain.Order, error) {
	id, err := m.deps.Binding.Get(ctx, m.session)
	if err != nil {
		if errors.Is(err, ports.ErrNoBinding) {
			return nil, nil
		}
		return nil, err
	}
	order, err := m.deps.Repo.GetOrder(ctx, id)
	if err != nil {
		if errors.Is(err, ports.ErrOrderNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return order, nil
}

// recalculate refreshes the aggregate's totals from its stored items and
// writes them back. Runs at most once per manager instance.
func (m *Manager) recalculate(ctx context.Context, order *domain.Order) error {
	items, err := m.deps.Repo.ListItems(ctx, order.ID)
	if err != nil {
		return err
	}
	order.Items = items
	order.Recalculate()
	saved, err := m.deps.Repo.SaveOrder(ctx, order)
	if err != nil {
		return err
	}
	order.Subtotal = saved.Subtotal
	order.Total = saved.Total
	return nil
}

func (m *Manager) hookAborted(err error) error {
	return &hookAbortError{cause: err}
}

// fail converts an operation error into the stored result. Hook messages are
// surfaced verbatim; ErrNoCartFound on clear keeps warning severity because
// the binding clear still happened.
func (m *Manager) fail(err error) error {
	if errors.Is(err, ErrNoCartFound) {
		m.warn(err.Error())
	} else {
		m.bad(err.Error())
	}
	return err
}
