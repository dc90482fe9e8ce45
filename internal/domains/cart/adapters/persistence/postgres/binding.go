package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/drdrak3/silvershop-core/internal/domains/cart/ports"
)

var _ ports.SessionBinding = (*SessionBinding)(nil)

// DefaultBindingTTL is the fallback lifetime for a session binding.
const DefaultBindingTTL = 14 * 24 * time.Hour

// SessionBinding persists session-to-order bindings in PostgreSQL.
type SessionBinding struct {
	db  *gorm.DB
	ttl time.Duration
}

// NewSessionBinding wires a PostgreSQL-backed binding store. Caller owns DB lifecycle.
func NewSessionBinding(db *gorm.DB, ttl time.Duration) *SessionBinding {
	if ttl <= 0 {
		ttl = DefaultBindingTTL
	}
	store := &SessionBinding{db: db, ttl: ttl}
	if db != nil {
		_ = db.AutoMigrate(&bindingRecord{})
	}
	return store
}

type bindingRecord struct {
	SessionKey string     `gorm:"primaryKey;column:session_key;size:128"`
	OrderID    int64      `gorm:"column:order_id;index"`
	ExpiresAt  *time.Time `gorm:"column:expires_at;index"`
	CreatedAt  time.Time  `gorm:"column:created_at"`
	UpdatedAt  time.Time  `gorm:"column:updated_at"`
}

func (bindingRecord) TableName() string { return "cart_bindings" }

// Get resolves a session key to its bound order ID, honoring expiry.
func (b *SessionBinding) Get(ctx context.Context, sessionKey string) (int64, error) {
	if err := b.ensureDB(); err != nil {
		return 0, err
	}
	var record bindingRecord
	if err := b.db.WithContext(ctx).First(&record, "session_key = ?", sessionKey).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ports.ErrNoBinding
		}
		return 0, err
	}
	if record.ExpiresAt != nil && record.ExpiresAt.Before(time.Now()) {
		return 0, ports.ErrNoBinding
	}
	return record.OrderID, nil
}

// Set upserts the binding keyed by session.
func (b *SessionBinding) Set(ctx context.Context, sessionKey string, orderID int64) error {
	if err := b.ensureDB(); err != nil {
		return err
	}
	sessionKey = strings.TrimSpace(sessionKey)
	if sessionKey == "" {
		return errors.New("session key is required")
	}
	expiry := time.Now().Add(b.ttl)
	record := bindingRecord{SessionKey: sessionKey, OrderID: orderID, ExpiresAt: &expiry}
	return b.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"order_id", "expires_at", "updated_at"}),
		}).
		Create(&record).Error
}

// Clear removes the binding for a session.
func (b *SessionBinding) Clear(ctx context.Context, sessionKey string) error {
	if err := b.ensureDB(); err != nil {
		return err
	}
	return b.db.WithContext(ctx).Delete(&bindingRecord{}, "session_key = ?", sessionKey).Error
}

// PurgeExpired removes all expired bindings. Use for housekeeping or cron.
func (b *SessionBinding) PurgeExpired(ctx context.Context) error {
	if err := b.ensureDB(); err != nil {
		return err
	}
	now := time.Now()
	return b.db.WithContext(ctx).Where("expires_at IS NOT NULL AND expires_at <= ?", now).Delete(&bindingRecord{}).Error
}

func (b *SessionBinding) ensureDB() error {
	if b == nil || b.db == nil {
		return errors.New("postgres session binding not configured")
	}
	return nil
}
