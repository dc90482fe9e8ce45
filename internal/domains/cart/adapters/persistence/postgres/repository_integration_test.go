//go:build integration
// +build integration

// To enable gopls support for this file, add the following to your VSCode settings.json:
// "gopls": {
//   "buildFlags": ["-tags=integration"]
// }

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/drdrak3/silvershop-core/internal/domains/cart/domain"
	"github.com/drdrak3/silvershop-core/internal/domains/cart/ports"
	"github.com/drdrak3/silvershop-core/internal/platform/migrations"
)

func setupPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("shop_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	err = migrations.Run(db)
	require.NoError(t, err)

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}

	return db, cleanup
}

func TestPostgresRepository_SaveAndGetOrder(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	saved, err := repo.SaveOrder(ctx, domain.NewCart())
	require.NoError(t, err)
	require.NotZero(t, saved.ID)

	item, err := repo.SaveItem(ctx, &domain.Item{
		OrderID:       saved.ID,
		ItemClass:     "product",
		Relation:      "product_id",
		PurchasableID: 7,
		Quantity:      2,
		UnitPrice:     500,
		Attributes:    map[string]string{"color": "red"},
	})
	require.NoError(t, err)
	require.NotZero(t, item.ID)

	loaded, err := repo.GetOrder(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCart, loaded.Status)
	require.Len(t, loaded.Items, 1)
	assert.Equal(t, 2, loaded.Items[0].Quantity)
	assert.Equal(t, "red", loaded.Items[0].Attribute("color"))
}

func TestPostgresRepository_SaveItemUpserts(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	order, err := repo.SaveOrder(ctx, domain.NewCart())
	require.NoError(t, err)

	item, err := repo.SaveItem(ctx, &domain.Item{
		OrderID: order.ID, ItemClass: "product", Relation: "product_id",
		PurchasableID: 7, Quantity: 2, UnitPrice: 500,
	})
	require.NoError(t, err)

	item.Quantity = 5
	updated, err := repo.SaveItem(ctx, item)
	require.NoError(t, err)
	assert.Equal(t, item.ID, updated.ID)

	items, err := repo.ListItems(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
}

func TestPostgresRepository_FindItemByAttributes(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	order, err := repo.SaveOrder(ctx, domain.NewCart())
	require.NoError(t, err)

	red, err := repo.SaveItem(ctx, &domain.Item{
		OrderID: order.ID, ItemClass: "product", Relation: "product_id",
		PurchasableID: 7, Quantity: 1, UnitPrice: 500,
		Attributes: map[string]string{"color": "red"},
	})
	require.NoError(t, err)
	_, err = repo.SaveItem(ctx, &domain.Item{
		OrderID: order.ID, ItemClass: "product", Relation: "product_id",
		PurchasableID: 7, Quantity: 1, UnitPrice: 500,
		Attributes: map[string]string{"color": "blue"},
	})
	require.NoError(t, err)

	found, err := repo.FindItem(ctx, ports.ItemQuery{
		OrderID:       order.ID,
		Relation:      "product_id",
		PurchasableID: 7,
		Attributes:    map[string]string{"color": "red"},
	})
	require.NoError(t, err)
	assert.Equal(t, red.ID, found.ID)

	_, err = repo.FindItem(ctx, ports.ItemQuery{
		OrderID:       order.ID,
		Relation:      "product_id",
		PurchasableID: 99,
	})
	require.ErrorIs(t, err, ports.ErrItemNotFound)
}

func TestPostgresRepository_DeleteOrderCascades(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	order, err := repo.SaveOrder(ctx, domain.NewCart())
	require.NoError(t, err)
	item, err := repo.SaveItem(ctx, &domain.Item{
		OrderID: order.ID, ItemClass: "product", Relation: "product_id",
		PurchasableID: 7, Quantity: 1, UnitPrice: 500,
	})
	require.NoError(t, err)

	require.NoError(t, repo.DeleteOrder(ctx, order.ID))
	_, err = repo.GetItem(ctx, item.ID)
	require.ErrorIs(t, err, ports.ErrItemNotFound)
	_, err = repo.GetOrder(ctx, order.ID)
	require.ErrorIs(t, err, ports.ErrOrderNotFound)
}

func TestPostgresSessionBinding_RoundTripAndExpiry(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	ctx := context.Background()
	binding := NewSessionBinding(db, time.Hour)

	_, err := binding.Get(ctx, "sess-1")
	require.ErrorIs(t, err, ports.ErrNoBinding)

	require.NoError(t, binding.Set(ctx, "sess-1", 5))
	id, err := binding.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, int64(5), id)

	require.NoError(t, binding.Clear(ctx, "sess-1"))
	_, err = binding.Get(ctx, "sess-1")
	require.ErrorIs(t, err, ports.ErrNoBinding)

	expired := NewSessionBinding(db, time.Millisecond)
	require.NoError(t, expired.Set(ctx, "sess-2", 6))
	time.Sleep(10 * time.Millisecond)
	_, err = expired.Get(ctx, "sess-2")
	require.ErrorIs(t, err, ports.ErrNoBinding)

	require.NoError(t, expired.PurgeExpired(ctx))
}

func TestPostgresHistoryStore_Idempotent(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	ctx := context.Background()
	history := NewHistoryStore(db)

	require.NoError(t, history.Record(ctx, "sess-1", 3))
	require.NoError(t, history.Record(ctx, "sess-1", 5))
	require.NoError(t, history.Record(ctx, "sess-1", 3))

	ids, err := history.List(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 5}, ids)
}
