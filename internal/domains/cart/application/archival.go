package application

import (
	"context"

	"github.com/drdrak3/silvershop-core/internal/domains/cart/domain"
	"github.com/drdrak3/silvershop-core/internal/domains/cart/ports"
)

// ArchivalCoordinator records orders that left cart status into the
// session-scoped history. Recording is idempotent per (session, order).
type ArchivalCoordinator struct {
	history ports.HistoryStore
}

func NewArchivalCoordinator(history ports.HistoryStore) *ArchivalCoordinator {
	return &ArchivalCoordinator{history: history}
}

// Record appends the order to the session history. Cart-status orders are
// never archived; callers hand over only completed hand-offs.
func (a *ArchivalCoordinator) Record(ctx context.Context, sessionKey string, order *domain.Order) error {
	if order == nil || order.IsCart() {
		return ErrInvalidState
	}
	if a.history == nil {
		return nil
	}
	return a.history.Record(ctx, sessionKey, order.ID)
}

// List returns the archived order IDs for a session, oldest first.
func (a *ArchivalCoordinator) List(ctx context.Context, sessionKey string) ([]int64, error) {
	if a.history == nil {
		return nil, nil
	}
	return a.history.List(ctx, sessionKey)
}
