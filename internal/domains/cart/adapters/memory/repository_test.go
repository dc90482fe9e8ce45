package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/drdrak3/silvershop-core/internal/domains/cart/domain"
	"github.com/drdrak3/silvershop-core/internal/domains/cart/ports"
)

func saveItem(t *testing.T, repo *Repository, orderID, purchasableID int64, attrs map[string]string) *domain.Item {
	t.Helper()
	item, err := repo.SaveItem(context.Background(), &domain.Item{
		OrderID:       orderID,
		ItemClass:     "widget",
		Relation:      "widget_id",
		PurchasableID: purchasableID,
		Quantity:      1,
		UnitPrice:     100,
		Attributes:    attrs,
	})
	require.NoError(t, err)
	return item
}

func TestRepository_SaveOrderAssignsID(t *testing.T) {
	repo := NewRepository()

	saved, err := repo.SaveOrder(context.Background(), domain.NewCart())
	require.NoError(t, err)
	require.NotZero(t, saved.ID)

	loaded, err := repo.GetOrder(context.Background(), saved.ID)
	require.NoError(t, err)
	require.Equal(t, saved.ID, loaded.ID)
	require.Equal(t, domain.StatusCart, loaded.Status)
}

func TestRepository_GetOrderMissing(t *testing.T) {
	repo := NewRepository()

	_, err := repo.GetOrder(context.Background(), 99)
	require.ErrorIs(t, err, ports.ErrOrderNotFound)
}

func TestRepository_SaveOrderRejectsBadStatus(t *testing.T) {
	repo := NewRepository()
	order := domain.NewCart()
	order.Status = "bogus"

	_, err := repo.SaveOrder(context.Background(), order)
	require.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestRepository_DeleteOrderCascadesItems(t *testing.T) {
	repo := NewRepository()
	order, err := repo.SaveOrder(context.Background(), domain.NewCart())
	require.NoError(t, err)
	item := saveItem(t, repo, order.ID, 7, nil)

	require.NoError(t, repo.DeleteOrder(context.Background(), order.ID))
	_, err = repo.GetItem(context.Background(), item.ID)
	require.ErrorIs(t, err, ports.ErrItemNotFound)
}

func TestRepository_FindItemPicksOldestMatch(t *testing.T) {
	repo := NewRepository()
	order, err := repo.SaveOrder(context.Background(), domain.NewCart())
	require.NoError(t, err)
	first := saveItem(t, repo, order.ID, 7, nil)
	saveItem(t, repo, order.ID, 7, nil)

	found, err := repo.FindItem(context.Background(), ports.ItemQuery{
		OrderID:       order.ID,
		Relation:      "widget_id",
		PurchasableID: 7,
	})
	require.NoError(t, err)
	require.Equal(t, first.ID, found.ID)
}

func TestRepository_FindItemMatchesAttributes(t *testing.T) {
	repo := NewRepository()
	order, err := repo.SaveOrder(context.Background(), domain.NewCart())
	require.NoError(t, err)
	saveItem(t, repo, order.ID, 7, map[string]string{"color": "red"})
	blue := saveItem(t, repo, order.ID, 7, map[string]string{"color": "blue"})

	found, err := repo.FindItem(context.Background(), ports.ItemQuery{
		OrderID:       order.ID,
		Relation:      "widget_id",
		PurchasableID: 7,
		Attributes:    map[string]string{"color": "blue"},
	})
	require.NoError(t, err)
	require.Equal(t, blue.ID, found.ID)
}

func TestRepository_FindItemNoMatch(t *testing.T) {
	repo := NewRepository()
	order, err := repo.SaveOrder(context.Background(), domain.NewCart())
	require.NoError(t, err)
	saveItem(t, repo, order.ID, 7, nil)

	_, err = repo.FindItem(context.Background(), ports.ItemQuery{
		OrderID:       order.ID,
		Relation:      "widget_id",
		PurchasableID: 8,
	})
	require.ErrorIs(t, err, ports.ErrItemNotFound)
}

func TestRepository_ListItemsInsertionOrder(t *testing.T) {
	repo := NewRepository()
	order, err := repo.SaveOrder(context.Background(), domain.NewCart())
	require.NoError(t, err)
	first := saveItem(t, repo, order.ID, 7, nil)
	second := saveItem(t, repo, order.ID, 8, nil)

	items, err := repo.ListItems(context.Background(), order.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, first.ID, items[0].ID)
	require.Equal(t, second.ID, items[1].ID)
}

func TestRepository_ClonesOnRead(t *testing.T) {
	repo := NewRepository()
	order, err := repo.SaveOrder(context.Background(), domain.NewCart())
	require.NoError(t, err)
	item := saveItem(t, repo, order.ID, 7, map[string]string{"color": "red"})

	item.Quantity = 99
	item.Attributes["color"] = "green"

	stored, err := repo.GetItem(context.Background(), item.ID)
	require.NoError(t, err)
	require.Equal(t, 1, stored.Quantity)
	require.Equal(t, "red", stored.Attribute("color"))
}

func TestRepository_ListIdleCarts(t *testing.T) {
	repo := NewRepository()
	idle, err := repo.SaveOrder(context.Background(), domain.NewCart())
	require.NoError(t, err)
	placed, err := repo.SaveOrder(context.Background(), domain.NewCart())
	require.NoError(t, err)
	require.NoError(t, placed.UpdateStatus(domain.StatusPlaced))
	_, err = repo.SaveOrder(context.Background(), placed)
	require.NoError(t, err)

	carts, err := repo.ListIdleCarts(context.Background(), time.Now().Add(time.Minute))
	require.NoError(t, err)
	require.Len(t, carts, 1)
	require.Equal(t, idle.ID, carts[0].ID)

	none, err := repo.ListIdleCarts(context.Background(), time.Now().Add(-time.Minute))
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestSessionBinding_RoundTrip(t *testing.T) {
	binding := NewSessionBinding()

	_, err := binding.Get(context.Background(), "sess-1")
	require.ErrorIs(t, err, ports.ErrNoBinding)

	require.NoError(t, binding.Set(context.Background(), "sess-1", 5))
	id, err := binding.Get(context.Background(), "sess-1")
	require.NoError(t, err)
	require.Equal(t, int64(5), id)

	require.NoError(t, binding.Clear(context.Background(), "sess-1"))
	_, err = binding.Get(context.Background(), "sess-1")
	require.ErrorIs(t, err, ports.ErrNoBinding)
}

func TestHistoryStore_DedupesAndOrders(t *testing.T) {
	history := NewHistoryStore()

	require.NoError(t, history.Record(context.Background(), "sess-1", 3))
	require.NoError(t, history.Record(context.Background(), "sess-1", 5))
	require.NoError(t, history.Record(context.Background(), "sess-1", 3))

	ids, err := history.List(context.Background(), "sess-1")
	require.NoError(t, err)
	require.Equal(t, []int64{3, 5}, ids)

	other, err := history.List(context.Background(), "sess-2")
	require.NoError(t, err)
	require.Empty(t, other)
}
