package application

import (
	"context"
	"fmt"

	"github.com/drdrak3/silvershop-core/internal/domains/cart/domain"
	"github.com/drdrak3/silvershop-core/internal/domains/cart/ports"
)

// Service adapts the request-scoped Manager to the session-parameterized
// port the transport consumes. Each call mints a fresh manager for the
// session, so no mutable state crosses requests.
type Service struct {
	deps   Deps
	source ports.PurchasableSource
}

var _ ports.Service = (*Service)(nil)

// NewService wires the cart service with its collaborators.
func NewService(deps Deps, source ports.PurchasableSource) *Service {
	if deps.Locks == nil {
		deps.Locks = NewLockTable()
	}
	return &Service{deps: deps, source: source}
}

// Manager exposes a request-scoped manager for callers that drive several
// operations within one request lifetime.
func (s *Service) Manager(session string) *Manager {
	return NewManager(session, s.deps)
}

// Cart returns the current aggregate view for the session, nil order when no
// cart is bound.
func (s *Service) Cart(ctx context.Context, session string) (*ports.CartView, error) {
	m := s.Manager(session)
	order, err := m.Current(ctx)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return &ports.CartView{}, nil
	}
	items, err := m.Items(ctx)
	if err != nil {
		return nil, err
	}
	return &ports.CartView{Order: order, Items: items}, nil
}

// Add resolves the purchasable reference and puts it into the session's cart.
func (s *Service) Add(ctx context.Context, session, class string, purchasableID int64, quantity int, filter ports.Filter) (*ports.Outcome, error) {
	m := s.Manager(session)
	p, err := s.lookup(ctx, class, purchasableID)
	if err != nil {
		// Record the failure before rendering the outcome.
		err = m.fail(err)
		return outcome(m, nil), err
	}
	item, err := m.Add(ctx, p, quantity, filter)
	if err != nil {
		return outcome(m, nil), err
	}
	return outcome(m, item), nil
}

// Remove subtracts quantity from the matching item; non-positive quantity
// removes it entirely.
func (s *Service) Remove(ctx context.Context, session, class string, purchasableID int64, quantity int, filter ports.Filter) (*ports.Outcome, error) {
	m := s.Manager(session)
	p, err := s.lookup(ctx, class, purchasableID)
	if err != nil {
		err = m.fail(err)
		return outcome(m, nil), err
	}
	if err := m.Remove(ctx, p, quantity, filter); err != nil {
		return outcome(m, nil), err
	}
	return outcome(m, nil), nil
}

// SetQuantity overwrites the matching item's quantity.
func (s *Service) SetQuantity(ctx context.Context, session, class string, purchasableID int64, quantity int, filter ports.Filter) (*ports.Outcome, error) {
	m := s.Manager(session)
	p, err := s.lookup(ctx, class, purchasableID)
	if err != nil {
		err = m.fail(err)
		return outcome(m, nil), err
	}
	item, err := m.SetQuantity(ctx, p, quantity, filter)
	if err != nil {
		return outcome(m, nil), err
	}
	return outcome(m, item), nil
}

// Clear empties the session's cart binding.
func (s *Service) Clear(ctx context.Context, session string) (*ports.Outcome, error) {
	m := s.Manager(session)
	if err := m.Clear(ctx, true); err != nil {
		return outcome(m, nil), err
	}
	return outcome(m, nil), nil
}

// Archive hands a placed order over to session history.
func (s *Service) Archive(ctx context.Context, session string, requestedID int64) (*ports.Outcome, error) {
	m := s.Manager(session)
	if err := m.ArchiveCurrentSession(ctx, requestedID); err != nil {
		return outcome(m, nil), err
	}
	return outcome(m, nil), nil
}

// History lists the session's archived order IDs.
func (s *Service) History(ctx context.Context, session string) ([]int64, error) {
	if s.deps.History == nil {
		return nil, nil
	}
	return s.deps.History.List(ctx, session)
}

func (s *Service) lookup(ctx context.Context, class string, id int64) (ports.Purchasable, error) {
	if s.source == nil {
		return nil, fmt.Errorf("%w: no purchasable source configured", ErrNotFound)
	}
	p, err := s.source.Purchasable(ctx, class, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: %s %d", ErrNotFound, class, id)
	}
	return p, nil
}

func outcome(m *Manager, item *domain.Item) *ports.Outcome {
	out := &ports.Outcome{OK: true, Severity: ports.SeverityGood, Item: item}
	if r := m.Result(); r != nil {
		out.Message = r.Message
		out.Severity = r.Severity
		out.OK = r.Severity == ports.SeverityGood
	}
	return out
}
