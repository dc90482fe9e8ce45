package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/drdrak3/silvershop-core/internal/domains/cart/ports"
)

var _ ports.HistoryStore = (*HistoryStore)(nil)

// HistoryStore persists session order history in PostgreSQL. The unique
// index over (session_key, order_id) plus a do-nothing upsert gives the
// required record-once semantics.
type HistoryStore struct {
	db *gorm.DB
}

func NewHistoryStore(db *gorm.DB) *HistoryStore {
	store := &HistoryStore{db: db}
	if db != nil {
		_ = db.AutoMigrate(&historyRecord{})
	}
	return store
}

type historyRecord struct {
	ID         int64     `gorm:"primaryKey;column:id"`
	SessionKey string    `gorm:"column:session_key;size:128;uniqueIndex:idx_cart_history_entry"`
	OrderID    int64     `gorm:"column:order_id;uniqueIndex:idx_cart_history_entry"`
	CreatedAt  time.Time `gorm:"column:created_at;index"`
}

func (historyRecord) TableName() string { return "cart_history" }

func (h *HistoryStore) Record(ctx context.Context, sessionKey string, orderID int64) error {
	if err := h.ensureDB(); err != nil {
		return err
	}
	record := historyRecord{SessionKey: sessionKey, OrderID: orderID}
	return h.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_key"}, {Name: "order_id"}},
			DoNothing: true,
		}).
		Create(&record).Error
}

func (h *HistoryStore) List(ctx context.Context, sessionKey string) ([]int64, error) {
	if err := h.ensureDB(); err != nil {
		return nil, err
	}
	var records []historyRecord
	if err := h.db.WithContext(ctx).
		Where("session_key = ?", sessionKey).
		Order("id").
		Find(&records).Error; err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(records))
	for _, record := range records {
		ids = append(ids, record.OrderID)
	}
	return ids, nil
}

func (h *HistoryStore) ensureDB() error {
	if h == nil || h.db == nil {
		return errors.New("postgres history store not configured")
	}
	return nil
}
