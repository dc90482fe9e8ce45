// Package redis backs the session binding and history ports with Redis,
// useful when carts must survive process restarts without a relational store.
package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/drdrak3/silvershop-core/internal/domains/cart/ports"
)

var _ ports.SessionBinding = (*SessionBinding)(nil)

// DefaultBindingTTL mirrors the postgres adapter's fallback lifetime.
const DefaultBindingTTL = 14 * 24 * time.Hour

// SessionBinding keeps session-to-order bindings as plain Redis keys with a
// TTL, so abandoned bindings expire without housekeeping.
type SessionBinding struct {
	rdb *goredis.Client
	ttl time.Duration
}

// NewSessionBinding wires a Redis-backed binding store. Caller owns the client.
func NewSessionBinding(rdb *goredis.Client, ttl time.Duration) *SessionBinding {
	if ttl <= 0 {
		ttl = DefaultBindingTTL
	}
	return &SessionBinding{rdb: rdb, ttl: ttl}
}

// Connect dials Redis at the given address and verifies connectivity.
func Connect(ctx context.Context, addr string) (*goredis.Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}

func (b *SessionBinding) Get(ctx context.Context, sessionKey string) (int64, error) {
	if err := b.ensureClient(); err != nil {
		return 0, err
	}
	raw, err := b.rdb.Get(ctx, bindingKey(sessionKey)).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return 0, ports.ErrNoBinding
		}
		return 0, err
	}
	orderID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("corrupt binding for session %q: %w", sessionKey, err)
	}
	return orderID, nil
}

func (b *SessionBinding) Set(ctx context.Context, sessionKey string, orderID int64) error {
	if err := b.ensureClient(); err != nil {
		return err
	}
	return b.rdb.Set(ctx, bindingKey(sessionKey), strconv.FormatInt(orderID, 10), b.ttl).Err()
}

func (b *SessionBinding) Clear(ctx context.Context, sessionKey string) error {
	if err := b.ensureClient(); err != nil {
		return err
	}
	return b.rdb.Del(ctx, bindingKey(sessionKey)).Err()
}

func (b *SessionBinding) ensureClient() error {
	if b == nil || b.rdb == nil {
		return errors.New("redis session binding not configured")
	}
	return nil
}

func bindingKey(sessionKey string) string {
	return "cart:binding:" + sessionKey
}
