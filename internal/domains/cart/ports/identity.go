package ports

import "context"

// Actor identifies the authenticated party behind a request, when there is one.
type Actor struct {
	ID   int64
	Name string
}

// Identity exposes the current actor to the cart core. Implementations pull
// from whatever auth mechanism the transport uses; nil means anonymous.
type Identity interface {
	CurrentActor(ctx context.Context) *Actor
}

// IdentityFunc adapts a plain function to the Identity interface.
type IdentityFunc func(ctx context.Context) *Actor

func (f IdentityFunc) CurrentActor(ctx context.Context) *Actor { return f(ctx) }

// AnonymousIdentity is the safe default when no auth layer is wired.
var AnonymousIdentity Identity = IdentityFunc(func(context.Context) *Actor { return nil })
