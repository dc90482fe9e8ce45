package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/drdrak3/silvershop-core/internal/domains/cart/ports"
)

func TestHooks_FireInRegistrationOrder(t *testing.T) {
	hooks := NewHooks()
	var calls []string
	hooks.Register(ports.HookBeforeAdd, func(context.Context, ports.HookContext) error {
		calls = append(calls, "first")
		return nil
	})
	hooks.Register(ports.HookBeforeAdd, func(context.Context, ports.HookContext) error {
		calls = append(calls, "second")
		return nil
	})

	require.NoError(t, hooks.Fire(context.Background(), ports.HookBeforeAdd, ports.HookContext{}))
	require.Equal(t, []string{"first", "second"}, calls)
}

func TestHooks_FirstErrorStopsChain(t *testing.T) {
	hooks := NewHooks()
	veto := errors.New("blocked")
	var reached bool
	hooks.Register(ports.HookBeforeAdd, func(context.Context, ports.HookContext) error {
		return veto
	})
	hooks.Register(ports.HookBeforeAdd, func(context.Context, ports.HookContext) error {
		reached = true
		return nil
	})

	err := hooks.Fire(context.Background(), ports.HookBeforeAdd, ports.HookContext{})
	require.ErrorIs(t, err, veto)
	require.False(t, reached)
}

func TestHooks_UnregisteredStageIsNoop(t *testing.T) {
	hooks := NewHooks()
	require.NoError(t, hooks.Fire(context.Background(), ports.HookAfterRemove, ports.HookContext{}))
}

func TestHooks_NilHookIgnored(t *testing.T) {
	hooks := NewHooks()
	hooks.Register(ports.HookBeforeAdd, nil)
	require.NoError(t, hooks.Fire(context.Background(), ports.HookBeforeAdd, ports.HookContext{}))
}
