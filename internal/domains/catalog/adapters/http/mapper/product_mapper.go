package mapper

import catalogdomain "github.com/drdrak3/silvershop-core/internal/domains/catalog/domain"

// Variation is the transport-layer shape of a product variation.
type Variation struct {
	ID            int64  `json:"id"`
	Title         string `json:"title"`
	SKU           string `json:"sku,omitempty"`
	Price         int64  `json:"price"`
	AllowPurchase bool   `json:"allowPurchase"`
	Stock         int    `json:"stock,omitempty"`
}

// Product is the transport-layer shape of a catalog product.
type Product struct {
	ID              int64       `json:"id"`
	Title           string      `json:"title"`
	SKU             string      `json:"sku,omitempty"`
	Price           int64       `json:"price"`
	AllowPurchase   bool        `json:"allowPurchase"`
	AllowDirectSale bool        `json:"allowDirectSale"`
	Stock           int         `json:"stock,omitempty"`
	ImageURLs       []string    `json:"imageUrls,omitempty"`
	TagNames        []string    `json:"tagNames,omitempty"`
	Variations      []Variation `json:"variations,omitempty"`
}

// ToDomain converts a transport product into the catalog domain model.
func ToDomain(product Product) *catalogdomain.Product {
	mapped := &catalogdomain.Product{
		ID:              product.ID,
		Title:           product.Title,
		SKU:             product.SKU,
		Price:           product.Price,
		AllowPurchase:   product.AllowPurchase,
		AllowDirectSale: product.AllowDirectSale,
		Stock:           product.Stock,
		ImageURLs:       product.ImageURLs,
		TagNames:        product.TagNames,
	}
	for _, variation := range product.Variations {
		mapped.Variations = append(mapped.Variations, &catalogdomain.Variation{
			ID:            variation.ID,
			ProductID:     product.ID,
			Title:         variation.Title,
			SKU:           variation.SKU,
			Price:         variation.Price,
			AllowPurchase: variation.AllowPurchase,
			Stock:         variation.Stock,
		})
	}
	return mapped
}

// FromDomain converts a catalog product to the transport representation.
func FromDomain(product *catalogdomain.Product) Product {
	if product == nil {
		return Product{}
	}
	mapped := Product{
		ID:              product.ID,
		Title:           product.Title,
		SKU:             product.SKU,
		Price:           product.Price,
		AllowPurchase:   product.AllowPurchase,
		AllowDirectSale: product.AllowDirectSale,
		Stock:           product.Stock,
		ImageURLs:       product.ImageURLs,
		TagNames:        product.TagNames,
	}
	for _, variation := range product.Variations {
		mapped.Variations = append(mapped.Variations, Variation{
			ID:            variation.ID,
			Title:         variation.Title,
			SKU:           variation.SKU,
			Price:         variation.Price,
			AllowPurchase: variation.AllowPurchase,
			Stock:         variation.Stock,
		})
	}
	return mapped
}

// FromDomainList converts a product list.
func FromDomainList(products []*catalogdomain.Product) []Product {
	list := make([]Product, 0, len(products))
	for _, product := range products {
		list = append(list, FromDomain(product))
	}
	return list
}
