package ports

import "context"

// HistoryStore keeps the per-session record of orders that left cart status.
// Record must be idempotent: the same (session, order) pair is stored once
// no matter how often it is recorded.
type HistoryStore interface {
	Record(ctx context.Context, sessionKey string, orderID int64) error
	// List returns the recorded order IDs for a session, oldest first.
	List(ctx context.Context, sessionKey string) ([]int64, error)
}
