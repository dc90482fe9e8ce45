package redis

import (
	"context"
	"errors"
	"strconv"

	goredis "github.com/redis/go-redis/v9"

	"github.com/drdrak3/silvershop-core/internal/domains/cart/ports"
)

var _ ports.HistoryStore = (*HistoryStore)(nil)

// HistoryStore keeps session order history in a Redis sorted set scored by
// insertion sequence; ZADD NX gives the record-once semantics.
type HistoryStore struct {
	rdb *goredis.Client
}

func NewHistoryStore(rdb *goredis.Client) *HistoryStore {
	return &HistoryStore{rdb: rdb}
}

func (h *HistoryStore) Record(ctx context.Context, sessionKey string, orderID int64) error {
	if err := h.ensureClient(); err != nil {
		return err
	}
	key := historyKey(sessionKey)
	seq, err := h.rdb.Incr(ctx, key+":seq").Result()
	if err != nil {
		return err
	}
	return h.rdb.ZAddNX(ctx, key, goredis.Z{
		Score:  float64(seq),
		Member: strconv.FormatInt(orderID, 10),
	}).Err()
}

func (h *HistoryStore) List(ctx context.Context, sessionKey string) ([]int64, error) {
	if err := h.ensureClient(); err != nil {
		return nil, err
	}
	members, err := h.rdb.ZRange(ctx, historyKey(sessionKey), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(members))
	for _, member := range members {
		id, err := strconv.ParseInt(member, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (h *HistoryStore) ensureClient() error {
	if h == nil || h.rdb == nil {
		return errors.New("redis history store not configured")
	}
	return nil
}

func historyKey(sessionKey string) string {
	return "cart:history:" + sessionKey
}
