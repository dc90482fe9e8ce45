package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/drdrak3/silvershop-core/internal/domains/catalog/domain"
	"github.com/drdrak3/silvershop-core/internal/domains/catalog/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists catalog products in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&productRecord{}, &variationRecord{})
	}
	return repo
}

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

// Save inserts or updates a product and replaces its variations.
func (r *Repository) Save(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if product == nil {
		return nil, errors.New("product is nil")
	}
	if err := product.Validate(); err != nil {
		return nil, err
	}
	record := toProductRecord(product)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "id"}},
				DoUpdates: clause.Assignments(map[string]any{
					"title":             record.Title,
					"sku":               record.SKU,
					"price":             record.Price,
					"allow_purchase":    record.AllowPurchase,
					"allow_direct_sale": record.AllowDirectSale,
					"stock":             record.Stock,
					"image_urls":        record.ImageURLs,
					"tag_names":         record.TagNames,
					"updated_at":        gorm.Expr("NOW()"),
				}),
			}).Create(&record).Error; err != nil {
			return err
		}
		if err := tx.Delete(&variationRecord{}, "product_id = ?", record.ID).Error; err != nil {
			return err
		}
		for _, variation := range product.Variations {
			vrec := toVariationRecord(variation, record.ID)
			if err := tx.Create(&vrec).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, record.ID)
}

// GetByID fetches a product and its variations.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record productRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	var variations []variationRecord
	if err := r.db.WithContext(ctx).Where("product_id = ?", id).Order("id").Find(&variations).Error; err != nil {
		return nil, err
	}
	return record.toDomain(variations), nil
}

// GetByVariationID fetches a single variation.
func (r *Repository) GetByVariationID(ctx context.Context, id int64) (*domain.Variation, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record variationRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	variation := record.toDomain()
	return &variation, nil
}

// Delete removes a product and its variations.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Delete(&variationRecord{}, "product_id = ?", id).Error; err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&productRecord{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

// List returns all products with their variations.
func (r *Repository) List(ctx context.Context) ([]*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []productRecord
	if err := r.db.WithContext(ctx).Order("id").Find(&records).Error; err != nil {
		return nil, err
	}
	products := make([]*domain.Product, 0, len(records))
	for i := range records {
		var variations []variationRecord
		if err := r.db.WithContext(ctx).Where("product_id = ?", records[i].ID).Order("id").Find(&variations).Error; err != nil {
			return nil, err
		}
		products = append(products, records[i].toDomain(variations))
	}
	return products, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres catalog repository not configured")
	}
	return nil
}

func toProductRecord(product *domain.Product) productRecord {
	return productRecord{
		ID:              product.ID,
		Title:           product.Title,
		SKU:             product.SKU,
		Price:           product.Price,
		AllowPurchase:   product.AllowPurchase,
		AllowDirectSale: product.AllowDirectSale,
		Stock:           product.Stock,
		ImageURLs:       pq.StringArray(product.ImageURLs),
		TagNames:        pq.StringArray(product.TagNames),
	}
}

func toVariationRecord(variation *domain.Variation, productID int64) variationRecord {
	return variationRecord{
		ID:            variation.ID,
		ProductID:     productID,
		Title:         variation.Title,
		SKU:           variation.SKU,
		Price:         variation.Price,
		AllowPurchase: variation.AllowPurchase,
		Stock:         variation.Stock,
	}
}

func (r productRecord) toDomain(variations []variationRecord) *domain.Product {
	product := &domain.Product{
		ID:              r.ID,
		Title:           r.Title,
		SKU:             r.SKU,
		Price:           r.Price,
		AllowPurchase:   r.AllowPurchase,
		AllowDirectSale: r.AllowDirectSale,
		Stock:           r.Stock,
		ImageURLs:       []string(r.ImageURLs),
		TagNames:        []string(r.TagNames),
	}
	for i := range variations {
		variation := variations[i].toDomain()
		product.Variations = append(product.Variations, &variation)
	}
	return product
}

func (r variationRecord) toDomain() domain.Variation {
	return domain.Variation{
		ID:            r.ID,
		ProductID:     r.ProductID,
		Title:         r.Title,
		SKU:           r.SKU,
		Price:         r.Price,
		AllowPurchase: r.AllowPurchase,
		Stock:         r.Stock,
	}
}
