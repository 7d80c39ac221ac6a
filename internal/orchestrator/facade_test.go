package orchestrator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"trade_gateway/internal/models"
)

func TestFacadePartialSuccessKeepsSuccessTrue(t *testing.T) {
	client := newFakeClient()
	client.stopErr[models.OrderTypeStopMarket] = models.ExchangeError("fake", "-2021", "would trigger immediately")
	client.stopErr[models.OrderTypeTakeProfit] = models.ExchangeError("fake", "-2021", "would trigger immediately")
	f := NewFacade(NewRegistry([]OrderClient{client}, &fakeNotifier{}))

	resp := f.QuickLong(context.Background(), "fake", quickReq())
	require.True(t, resp.Success)
	require.Empty(t, resp.Error)
	require.NotZero(t, resp.Timestamp)

	res, ok := resp.Data.(*models.QuickTradeResult)
	require.True(t, ok)
	require.Equal(t, "m1", res.MainOrder.OrderID)
	require.Nil(t, res.StopLoss)
	require.NotEmpty(t, res.StopLossError)
}

func TestFacadePlaceOrderEnvelope(t *testing.T) {
	client := newFakeClient()
	f := NewFacade(NewRegistry([]OrderClient{client}, &fakeNotifier{}))

	resp := f.PlaceOrder(context.Background(), "fake", models.OrderRequest{
		Symbol: "BTCUSDT", Side: models.SideBuy, Quantity: "0.020",
		Type: models.OrderTypeLimit, Price: "9900",
	})
	require.True(t, resp.Success)
	order, ok := resp.Data.(models.Order)
	require.True(t, ok)
	require.Equal(t, "l1", order.OrderID)
}

func TestFacadeUnknownExchange(t *testing.T) {
	f := NewFacade(NewRegistry(nil, &fakeNotifier{}))

	resp := f.ClosePosition(context.Background(), "mexc", "BTCUSDT")
	require.False(t, resp.Success)
	require.Contains(t, resp.Error, "unknown exchange")
}

func TestFacadeErrorsBecomeEnvelope(t *testing.T) {
	client := newFakeClient()
	client.positionsErr = models.NetworkError("fake", context.DeadlineExceeded)
	f := NewFacade(NewRegistry([]OrderClient{client}, &fakeNotifier{}))

	resp := f.Positions(context.Background(), "fake", "BTCUSDT")
	require.False(t, resp.Success)
	require.NotEmpty(t, resp.Error)
}
