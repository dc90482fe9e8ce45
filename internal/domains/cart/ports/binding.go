package ports

import (
	"context"
	"errors"
)

// ErrNoBinding signals that a session has no order bound.
var ErrNoBinding = errors.New("session has no order binding")

// SessionBinding maps a session key to the identity of its current order
// aggregate. One binding per session; cleared on cart clear or archival.
type SessionBinding interface {
	// Get returns the bound order ID or ErrNoBinding.
	Get(ctx context.Context, sessionKey string) (int64, error)
	Set(ctx context.Context, sessionKey string, orderID int64) error
	Clear(ctx context.Context, sessionKey string) error
}

// NoopSessionBinding is a safe default when callers do not need persistence.
var NoopSessionBinding SessionBinding = noopSessionBinding{}

type noopSessionBinding struct{}

func (noopSessionBinding) Get(context.Context, string) (int64, error) { return 0, ErrNoBinding }
func (noopSessionBinding) Set(context.Context, string, int64) error   { return nil }
func (noopSessionBinding) Clear(context.Context, string) error        { return nil }
