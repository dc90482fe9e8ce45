package memory

import (
	"context"
	"sync"

	"github.com/drdrak3/silvershop-core/internal/domains/cart/ports"
)

var _ ports.SessionBinding = (*SessionBinding)(nil)

// SessionBinding is an in-memory session-to-order mapping.
type SessionBinding struct {
	bindings sync.Map
}

func NewSessionBinding() *SessionBinding {
	return &SessionBinding{}
}

func (b *SessionBinding) Get(_ context.Context, sessionKey string) (int64, error) {
	value, ok := b.bindings.Load(sessionKey)
	if !ok {
		return 0, ports.ErrNoBinding
	}
	return value.(int64), nil
}

func (b *SessionBinding) Set(_ context.Context, sessionKey string, orderID int64) error {
	b.bindings.Store(sessionKey, orderID)
	return nil
}

func (b *SessionBinding) Clear(_ context.Context, sessionKey string) error {
	b.bindings.Delete(sessionKey)
	return nil
}
