package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/drdrak3/silvershop-core/internal/domains/cart/domain"
	"github.com/drdrak3/silvershop-core/internal/domains/cart/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists orders and line items in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&orderRecord{}, &itemRecord{})
	}
	return repo
}

// orderRecord maps the order aggregate to a relational table.
type orderRecord struct {
	ID        int64     `gorm:"primaryKey;column:id"`
	Status    string    `gorm:"column:status;type:varchar(32);index"`
	OwnerID   int64     `gorm:"column:owner_id;index"`
	Subtotal  int64     `gorm:"column:subtotal"`
	Total     int64     `gorm:"column:total"`
	CreatedAt time.Time `gorm:"column:created_at;index"`
	UpdatedAt time.Time `gorm:"column:updated_at;index"`
}

func (orderRecord) TableName() string { return "orders" }

// itemRecord maps a line item. The relationship field name and discriminating
// attributes are stored alongside the purchasable id so the match predicate
// stays a plain equality query.
type itemRecord struct {
	ID            int64             `gorm:"primaryKey;column:id"`
	OrderID       int64             `gorm:"column:order_id;index:idx_order_items_match"`
	ItemClass     string            `gorm:"column:item_class;type:varchar(64)"`
	Relation      string            `gorm:"column:relation;type:varchar(64);index:idx_order_items_match"`
	PurchasableID int64             `gorm:"column:purchasable_id;index:idx_order_items_match"`
	Quantity      int               `gorm:"column:quantity"`
	UnitPrice     int64             `gorm:"column:unit_price"`
	Attributes    map[string]string `gorm:"column:attributes;serializer:json"`
	CreatedAt     time.Time         `gorm:"column:created_at;index"`
	UpdatedAt     time.Time         `gorm:"column:updated_at"`
}

func (itemRecord) TableName() string { return "order_items" }

// SaveOrder inserts or updates an order.
func (r *Repository) SaveOrder(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("order is nil")
	}
	record := toOrderRecord(order)
	if record.ID == 0 {
		if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
			return nil, err
		}
	} else {
		if err := r.db.WithContext(ctx).
			Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "id"}},
				DoUpdates: clause.Assignments(map[string]any{
					"status":     record.Status,
					"owner_id":   record.OwnerID,
					"subtotal":   record.Subtotal,
					"total":      record.Total,
					"updated_at": gorm.Expr("NOW()"),
				}),
			}).Create(&record).Error; err != nil {
			return nil, err
		}
	}
	return r.GetOrder(ctx, record.ID)
}

// GetOrder fetches an order with its items in insertion order.
func (r *Repository) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record orderRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrOrderNotFound
		}
		return nil, err
	}
	order := record.toDomain()
	items, err := r.ListItems(ctx, id)
	if err != nil {
		return nil, err
	}
	order.Items = items
	return order, nil
}

// DeleteOrder removes an order and its items.
func (r *Repository) DeleteOrder(ctx context.Context, id int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Delete(&itemRecord{}, "order_id = ?", id).Error; err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&orderRecord{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrOrderNotFound
	}
	return nil
}

// ListIdleCarts returns cart-status orders untouched since the cutoff.
func (r *Repository) ListIdleCarts(ctx context.Context, cutoff time.Time) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []orderRecord
	if err := r.db.WithContext(ctx).
		Where("status = ? AND updated_at < ?", string(domain.StatusCart), cutoff).
		Order("id").
		Find(&records).Error; err != nil {
		return nil, err
	}
	orders := make([]*domain.Order, 0, len(records))
	for i := range records {
		orders = append(orders, records[i].toDomain())
	}
	return orders, nil
}

// SaveItem inserts or updates a line item.
func (r *Repository) SaveItem(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if item == nil {
		return nil, errors.New("item is nil")
	}
	if err := item.Validate(); err != nil {
		return nil, err
	}
	record := toItemRecord(item)
	if record.ID == 0 {
		if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
			return nil, err
		}
	} else {
		if err := r.db.WithContext(ctx).
			Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "id"}},
				DoUpdates: clause.Assignments(map[string]any{
					"quantity":   record.Quantity,
					"unit_price": record.UnitPrice,
					"attributes": record.Attributes,
					"updated_at": gorm.Expr("NOW()"),
				}),
			}).Create(&record).Error; err != nil {
			return nil, err
		}
	}
	return r.GetItem(ctx, record.ID)
}

// GetItem fetches a line item by identifier.
func (r *Repository) GetItem(ctx context.Context, id int64) (*domain.Item, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record itemRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrItemNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// DeleteItem removes a line item by identifier.
func (r *Repository) DeleteItem(ctx context.Context, id int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&itemRecord{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrItemNotFound
	}
	return nil
}

// FindItem returns the oldest item matching the equality predicate. The
// attribute comparison happens after the indexed relation match because the
// attributes live in a JSON column.
func (r *Repository) FindItem(ctx context.Context, query ports.ItemQuery) (*domain.Item, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []itemRecord
	if err := r.db.WithContext(ctx).
		Where("order_id = ? AND relation = ? AND purchasable_id = ?", query.OrderID, query.Relation, query.PurchasableID).
		Order("id").
		Find(&records).Error; err != nil {
		return nil, err
	}
	for i := range records {
		if attributesMatch(records[i].Attributes, query.Attributes) {
			return records[i].toDomain(), nil
		}
	}
	return nil, ports.ErrItemNotFound
}

// ListItems returns an order's items in insertion order.
func (r *Repository) ListItems(ctx context.Context, orderID int64) ([]*domain.Item, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []itemRecord
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("id").
		Find(&records).Error; err != nil {
		return nil, err
	}
	items := make([]*domain.Item, 0, len(records))
	for i := range records {
		items = append(items, records[i].toDomain())
	}
	return items, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres cart repository not configured")
	}
	return nil
}

func attributesMatch(stored map[string]string, wanted map[string]string) bool {
	for key, value := range wanted {
		if stored[key] != value {
			return false
		}
	}
	return true
}

func toOrderRecord(order *domain.Order) orderRecord {
	return orderRecord{
		ID:       order.ID,
		Status:   string(order.Status),
		OwnerID:  order.OwnerID,
		Subtotal: order.Subtotal,
		Total:    order.Total,
	}
}

func (r orderRecord) toDomain() *domain.Order {
	return &domain.Order{
		ID:       r.ID,
		Status:   domain.Status(r.Status),
		OwnerID:  r.OwnerID,
		Subtotal: r.Subtotal,
		Total:    r.Total,
	}
}

func toItemRecord(item *domain.Item) itemRecord {
	return itemRecord{
		ID:            item.ID,
		OrderID:       item.OrderID,
		ItemClass:     item.ItemClass,
		Relation:      item.Relation,
		PurchasableID: item.PurchasableID,
		Quantity:      item.Quantity,
		UnitPrice:     item.UnitPrice,
		Attributes:    item.Attributes,
	}
}

func (r itemRecord) toDomain() *domain.Item {
	return &domain.Item{
		ID:            r.ID,
		OrderID:       r.OrderID,
		ItemClass:     r.ItemClass,
		Relation:      r.Relation,
		PurchasableID: r.PurchasableID,
		Quantity:      r.Quantity,
		UnitPrice:     r.UnitPrice,
		Attributes:    r.Attributes,
	}
}
