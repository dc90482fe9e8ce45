package mapper

import (
	cartdomain "github.com/drdrak3/silvershop-core/internal/domains/cart/domain"
	cartports "github.com/drdrak3/silvershop-core/internal/domains/cart/ports"
)

// Item is the transport-layer shape of a cart line item.
type Item struct {
	ID            int64             `json:"id"`
	ItemClass     string            `json:"itemClass"`
	PurchasableID int64             `json:"purchasableId"`
	Quantity      int               `json:"quantity"`
	UnitPrice     int64             `json:"unitPrice"`
	LineTotal     int64             `json:"lineTotal"`
	Attributes    map[string]string `json:"attributes,omitempty"`
}

// Cart is the transport-layer shape of the current aggregate.
type Cart struct {
	OrderID  int64  `json:"orderId"`
	Status   string `json:"status"`
	Subtotal int64  `json:"subtotal"`
	Total    int64  `json:"total"`
	Items    []Item `json:"items"`
}

// Outcome is the transport-layer shape of an operation result.
type Outcome struct {
	Success  bool   `json:"success"`
	Message  string `json:"message,omitempty"`
	Severity string `json:"severity,omitempty"`
	Item     *Item  `json:"item,omitempty"`
}

// FromItem converts a domain item to the transport representation.
func FromItem(item *cartdomain.Item) *Item {
	if item == nil {
		return nil
	}
	return &Item{
		ID:            item.ID,
		ItemClass:     item.ItemClass,
		PurchasableID: item.PurchasableID,
		Quantity:      item.Quantity,
		UnitPrice:     item.UnitPrice,
		LineTotal:     item.LineTotal(),
		Attributes:    item.Attributes,
	}
}

// FromView converts a cart view to the transport representation. A session
// without a cart maps to a zero order ID and empty items.
func FromView(view *cartports.CartView) Cart {
	cart := Cart{Items: []Item{}}
	if view == nil || view.Order == nil {
		return cart
	}
	cart.OrderID = view.Order.ID
	cart.Status = string(view.Order.Status)
	cart.Subtotal = view.Order.Subtotal
	cart.Total = view.Order.Total
	for _, item := range view.Items {
		if mapped := FromItem(item); mapped != nil {
			cart.Items = append(cart.Items, *mapped)
		}
	}
	return cart
}

// FromOutcome converts an operation outcome to the transport representation.
func FromOutcome(out *cartports.Outcome) Outcome {
	if out == nil {
		return Outcome{}
	}
	return Outcome{
		Success:  out.OK,
		Message:  out.Message,
		Severity: string(out.Severity),
		Item:     FromItem(out.Item),
	}
}
