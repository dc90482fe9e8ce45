package memory

import (
	"context"
	"sync"

	"github.com/drdrak3/silvershop-core/internal/domains/cart/ports"
)

var _ ports.HistoryStore = (*HistoryStore)(nil)

// HistoryStore keeps session order history in memory with append-once
// semantics per (session, order) pair.
type HistoryStore struct {
	mu      sync.RWMutex
	entries map[string][]int64
}

func NewHistoryStore() *HistoryStore {
	return &HistoryStore{entries: map[string][]int64{}}
}

func (h *HistoryStore) Record(_ context.Context, sessionKey string, orderID int64) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, existing := range h.entries[sessionKey] {
		if existing == orderID {
			return nil
		}
	}
	h.entries[sessionKey] = append(h.entries[sessionKey], orderID)
	return nil
}

func (h *HistoryStore) List(_ context.Context, sessionKey string) ([]int64, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	history := h.entries[sessionKey]
	out := make([]int64, len(history))
	copy(out, history)
	return out, nil
}
