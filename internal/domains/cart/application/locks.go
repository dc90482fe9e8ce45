package application

import "sync"

// LockTable serializes read-modify-write sequences per order ID. Managers are
// request-scoped but share one table per process, so two in-flight requests
// mutating the same aggregate queue up instead of losing an accumulation.
type LockTable struct {
	mu    sync.Mutex
	locks map[int64]*orderLock
}

type orderLock struct {
	mu   sync.Mutex
	refs int
}

func NewLockTable() *LockTable {
	return &LockTable{locks: make(map[int64]*orderLock)}
}

// Acquire blocks until the lock for the order is held and returns the release
// function. Callers must release on every exit path.
func (t *LockTable) Acquire(orderID int64) func() {
	if t == nil {
		return func() {}
	}
	t.mu.Lock()
	entry, ok := t.locks[orderID]
	if !ok {
		entry = &orderLock{}
		t.locks[orderID] = entry
	}
	entry.refs++
	t.mu.Unlock()

	entry.mu.Lock()
	return func() {
		entry.mu.Unlock()
		t.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(t.locks, orderID)
		}
		t.mu.Unlock()
	}
}
