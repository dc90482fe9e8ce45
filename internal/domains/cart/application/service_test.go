package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/drdrak3/silvershop-core/internal/domains/cart/ports"
)

// widgetSource resolves widgets by ID, nil when unknown.
type widgetSource map[int64]*widget

func (s widgetSource) Purchasable(_ context.Context, _ string, id int64) (ports.Purchasable, error) {
	w, ok := s[id]
	if !ok {
		return nil, nil
	}
	return w, nil
}

func testService() (*Service, widgetSource) {
	source := widgetSource{7: newWidget(7), 8: newWidget(8)}
	return NewService(testDeps(), source), source
}

func TestService_AddOutcome(t *testing.T) {
	svc, _ := testService()

	out, err := svc.Add(context.Background(), "sess-1", "widget", 7, 2, nil)
	require.NoError(t, err)
	require.True(t, out.OK)
	require.Equal(t, ports.SeverityGood, out.Severity)
	require.Equal(t, "item added to cart", out.Message)
	require.NotNil(t, out.Item)
	require.Equal(t, 2, out.Item.Quantity)
}

func TestService_AddUnknownPurchasable(t *testing.T) {
	svc, _ := testService()

	out, err := svc.Add(context.Background(), "sess-1", "widget", 99, 1, nil)
	require.ErrorIs(t, err, ErrNotFound)
	require.False(t, out.OK)
	require.Equal(t, ports.SeverityBad, out.Severity)
	require.NotEmpty(t, out.Message)
}

func TestService_LookupFailureOutcomes(t *testing.T) {
	svc, _ := testService()

	out, err := svc.Remove(context.Background(), "sess-1", "widget", 99, 1, nil)
	require.ErrorIs(t, err, ErrNotFound)
	require.False(t, out.OK)
	require.Equal(t, ports.SeverityBad, out.Severity)
	require.NotEmpty(t, out.Message)

	out, err = svc.SetQuantity(context.Background(), "sess-1", "widget", 99, 2, nil)
	require.ErrorIs(t, err, ErrNotFound)
	require.False(t, out.OK)
	require.Equal(t, ports.SeverityBad, out.Severity)
	require.NotEmpty(t, out.Message)
}

func TestService_CartViewAcrossRequests(t *testing.T) {
	svc, _ := testService()

	_, err := svc.Add(context.Background(), "sess-1", "widget", 7, 2, nil)
	require.NoError(t, err)
	_, err = svc.Add(context.Background(), "sess-1", "widget", 8, 1, nil)
	require.NoError(t, err)

	view, err := svc.Cart(context.Background(), "sess-1")
	require.NoError(t, err)
	require.NotNil(t, view.Order)
	require.Len(t, view.Items, 2)
	require.Equal(t, int64(1500), view.Order.Total)
}

func TestService_CartEmptyForUnknownSession(t *testing.T) {
	svc, _ := testService()

	view, err := svc.Cart(context.Background(), "nobody")
	require.NoError(t, err)
	require.Nil(t, view.Order)
	require.Empty(t, view.Items)
}

func TestService_SessionsAreIsolated(t *testing.T) {
	svc, _ := testService()

	_, err := svc.Add(context.Background(), "sess-1", "widget", 7, 1, nil)
	require.NoError(t, err)
	_, err = svc.Add(context.Background(), "sess-2", "widget", 7, 5, nil)
	require.NoError(t, err)

	one, err := svc.Cart(context.Background(), "sess-1")
	require.NoError(t, err)
	two, err := svc.Cart(context.Background(), "sess-2")
	require.NoError(t, err)
	require.NotEqual(t, one.Order.ID, two.Order.ID)
	require.Equal(t, 1, one.Items[0].Quantity)
	require.Equal(t, 5, two.Items[0].Quantity)
}

func TestService_RemoveOutcome(t *testing.T) {
	svc, _ := testService()

	_, err := svc.Add(context.Background(), "sess-1", "widget", 7, 3, nil)
	require.NoError(t, err)
	out, err := svc.Remove(context.Background(), "sess-1", "widget", 7, 1, nil)
	require.NoError(t, err)
	require.True(t, out.OK)
	require.Equal(t, "item removed from cart", out.Message)
}

func TestService_ClearWithoutCartWarns(t *testing.T) {
	svc, _ := testService()

	out, err := svc.Clear(context.Background(), "sess-1")
	require.ErrorIs(t, err, ErrNoCartFound)
	require.False(t, out.OK)
	require.Equal(t, ports.SeverityWarning, out.Severity)
}

func TestService_HistoryEmpty(t *testing.T) {
	svc, _ := testService()

	ids, err := svc.History(context.Background(), "sess-1")
	require.NoError(t, err)
	require.Empty(t, ids)
}
