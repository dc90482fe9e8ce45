package application

import (
	"context"
	"sync"

	"github.com/drdrak3/silvershop-core/internal/domains/cart/ports"
)

// Hooks is an ordered hook registry. Observers run synchronously in
// registration order; the first error stops the remaining observers and
// vetoes the operation.
type Hooks struct {
	mu        sync.RWMutex
	observers map[ports.HookStage][]ports.Hook
}

var _ ports.HookDispatcher = (*Hooks)(nil)

func NewHooks() *Hooks {
	return &Hooks{observers: make(map[ports.HookStage][]ports.Hook)}
}

// Register appends an observer for the stage. Registration order is
// invocation order.
func (h *Hooks) Register(stage ports.HookStage, hook ports.Hook) {
	if hook == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.observers[stage] = append(h.observers[stage], hook)
}

// Fire invokes the stage's observers and returns the first failure.
func (h *Hooks) Fire(ctx context.Context, stage ports.HookStage, hc ports.HookContext) error {
	h.mu.RLock()
	hooks := h.observers[stage]
	h.mu.RUnlock()
	for _, hook := range hooks {
		if err := hook(ctx, hc); err != nil {
			return err
		}
	}
	return nil
}
