package migrations

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Run applies the schema for the bounded contexts. Intended to replace adapter-level automigrate.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&orderRecord{},
		&itemRecord{},
		&bindingRecord{},
		&historyRecord{},
		&productRecord{},
		&variationRecord{},
	)
}

// Order schema mirrors the cart Postgres adapter.
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

// Line item schema, indexed on the reconciliation key.
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

// Session binding schema.
type bindingRecord struct {
	SessionKey string     `gorm:"primaryKey;column:session_key;size:128"`
	OrderID    int64      `gorm:"column:order_id;index"`
	ExpiresAt  *time.Time `gorm:"column:expires_at;index"`
	CreatedAt  time.Time  `gorm:"column:created_at"`
	UpdatedAt  time.Time  `gorm:"column:updated_at"`
}

func (bindingRecord) TableName() string { return "cart_bindings" }

// Archival history schema, unique per session/order pair.
type historyRecord struct {
	ID         int64     `gorm:"primaryKey;column:id"`
	SessionKey string    `gorm:"column:session_key;size:128;uniqueIndex:idx_cart_history_entry"`
	OrderID    int64     `gorm:"column:order_id;uniqueIndex:idx_cart_history_entry"`
	CreatedAt  time.Time `gorm:"column:created_at;index"`
}

func (historyRecord) TableName() string { return "cart_history" }

// Product schema mirrors the catalog Postgres adapter.
type productRecord struct {
	ID              int64          `gorm:"primaryKey;column:id"`
	Title           string         `gorm:"column:title"`
	SKU             string         `gorm:"column:sku;index"`
	Price           int64          `gorm:"column:price"`
	AllowPurchase   bool           `gorm:"column:allow_purchase"`
	AllowDirectSale bool           `gorm:"column:allow_direct_sale"`
	Stock           int            `gorm:"column:stock"`
	ImageURLs       pq.StringArray `gorm:"column:image_urls;type:text[]"`
	TagNames        pq.StringArray `gorm:"column:tag_names;type:text[]"`
	CreatedAt       time.Time      `gorm:"column:created_at"`
	UpdatedAt       time.Time      `gorm:"column:updated_at"`
}

func (productRecord) TableName() string { return "products" }

type variationRecord struct {
	ID            int64     `gorm:"primaryKey;column:id"`
	ProductID     int64     `gorm:"column:product_id;index"`
	Title         string    `gorm:"column:title"`
	SKU           string    `gorm:"column:sku;index"`
	Price         int64     `gorm:"column:price"`
	AllowPurchase bool      `gorm:"column:allow_purchase"`
	Stock         int       `gorm:"column:stock"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (variationRecord) TableName() string { return "product_variations" }
