package application

import "errors"

var (
	// ErrNoOrder means the operation requires an existing cart-status
	// aggregate and none is bound to the session.
	ErrNoOrder = errors.New("no current order")
	// ErrNotFound means the purchasable or line item does not exist or does
	// not match the lookup predicate.
	ErrNotFound = errors.New("item not found")
	// ErrNotPurchasable means the purchasability check rejected the
	// entity/quantity/actor combination.
	ErrNotPurchasable = errors.New("not purchasable")
	// ErrInvalidState means a caller tried to bind an aggregate that is not
	// in cart status. This is a programming error, never a stored result.
	ErrInvalidState = errors.New("order is not in cart status")
	// ErrHookAborted wraps a hook observer's veto; its message is surfaced
	// verbatim as the operation result.
	ErrHookAborted = errors.New("operation aborted by hook")
	// ErrNoCartFound means clear was requested but nothing was bound.
	ErrNoCartFound = errors.New("no cart found")
)

// hookAbortError carries a hook observer's veto. Its message is the
// observer's message verbatim, while errors.Is still matches ErrHookAborted.
type hookAbortError struct {
	cause error
}

func (e *hookAbortError) Error() string { return e.cause.Error() }

func (e *hookAbortError) Unwrap() error { return e.cause }

func (e *hookAbortError) Is(target error) bool { return target == ErrHookAborted }
