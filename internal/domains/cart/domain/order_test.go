package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewCart(t *testing.T) {
	cart := NewCart()
	require.True(t, cart.IsCart())
	require.Zero(t, cart.ID)
}

func TestIsCart_NilAndStatuses(t *testing.T) {
	var nilOrder *Order
	require.False(t, nilOrder.IsCart())

	order := NewCart()
	require.NoError(t, order.UpdateStatus(StatusPlaced))
	require.False(t, order.IsCart())
}

func TestUpdateStatus(t *testing.T) {
	order := NewCart()

	require.NoError(t, order.UpdateStatus(StatusPaid))
	require.Equal(t, StatusPaid, order.Status)

	require.ErrorIs(t, order.UpdateStatus("shipped?"), ErrInvalidStatus)
	require.Equal(t, StatusPaid, order.Status)

	require.NoError(t, order.UpdateStatus(""))
	require.Equal(t, StatusCart, order.Status)
}

func TestAttachItem_ReplacesSameIdentity(t *testing.T) {
	order := NewCart()
	order.AttachItem(&Item{ID: 1, Quantity: 1})
	order.AttachItem(&Item{ID: 2, Quantity: 1})
	order.AttachItem(&Item{ID: 1, Quantity: 5})

	require.Len(t, order.Items, 2)
	require.Equal(t, 5, order.Items[0].Quantity)
	require.Equal(t, int64(1), order.Items[0].ID)
}

func TestDetachItem(t *testing.T) {
	order := NewCart()
	order.AttachItem(&Item{ID: 1})
	order.AttachItem(&Item{ID: 2})

	order.DetachItem(1)
	require.Len(t, order.Items, 1)
	require.Equal(t, int64(2), order.Items[0].ID)

	order.DetachItem(99)
	require.Len(t, order.Items, 1)
}

func TestRecalculate(t *testing.T) {
	order := NewCart()
	order.AttachItem(&Item{ID: 1, Quantity: 2, UnitPrice: 500})
	order.AttachItem(&Item{ID: 2, Quantity: 1, UnitPrice: 300})

	order.Recalculate()
	require.Equal(t, int64(1300), order.Subtotal)
	require.Equal(t, int64(1300), order.Total)

	order.Items = nil
	order.Recalculate()
	require.Zero(t, order.Total)
}

func TestItemValidate(t *testing.T) {
	item := &Item{Relation: "widget_id", PurchasableID: 7, Quantity: 1}
	require.NoError(t, item.Validate())

	item.Quantity = 0
	require.ErrorIs(t, item.Validate(), ErrInvalidQuantity)

	item.Quantity = 1
	item.Relation = ""
	require.ErrorIs(t, item.Validate(), ErrMissingRelation)
}

func TestItemAttribute(t *testing.T) {
	item := &Item{}
	require.Empty(t, item.Attribute("color"))

	item.Attributes = map[string]string{"color": "red"}
	require.Equal(t, "red", item.Attribute("color"))
}
