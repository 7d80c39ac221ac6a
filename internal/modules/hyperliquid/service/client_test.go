package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"trade_gateway/internal/models"
	"trade_gateway/internal/modules/config"
	"trade_gateway/internal/modules/credentials"
)

// ключ нулевого аккаунта hardhat, давно публичный
const testPrivKey = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

type hlFixture struct {
	client *Client
	server *httptest.Server

	exchangeBodies [][]byte
	exchangeReply  string
	stateReply     string
}

func newHLFixture(t *testing.T) *hlFixture {
	t.Helper()
	fx := &hlFixture{
		exchangeReply: `{"status":"ok","response":{"type":"order","data":{"statuses":[{"filled":{"oid":77,"totalSz":"0.5","avgPx":"2001.3"}}]}}}`,
	}

	fx.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		switch r.URL.Path {
		case "/info":
			var req map[string]any
			require.NoError(t, json.Unmarshal(body, &req))
			switch req["type"] {
			case "meta":
				_, _ = w.Write([]byte(`{"universe":[{"name":"ETH","szDecimals":4},{"name":"BTC","szDecimals":5}]}`))
			case "allMids":
				_, _ = w.Write([]byte(`{"ETH":"2000","BTC":"50000"}`))
			case "openOrders":
				_, _ = w.Write([]byte(`[]`))
			case "clearinghouseState":
				require.Equal(t, "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266", req["user"])
				_, _ = w.Write([]byte(fx.stateReply))
			default:
				_, _ = w.Write([]byte(`{}`))
			}
		case "/exchange":
			fx.exchangeBodies = append(fx.exchangeBodies, body)
			_, _ = w.Write([]byte(fx.exchangeReply))
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	t.Cleanup(fx.server.Close)

	cfg := &config.Config{}
	cfg.Hyperliquid.RestURL = fx.server.URL
	cfg.Hyperliquid.PrivateKey = testPrivKey
	cfg.Hyperliquid.WalletAddress = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
	fx.client = NewClient(cfg, credentials.NewStore(cfg))
	return fx
}

func TestNextNonceMonotonic(t *testing.T) {
	c := &Client{now: func() time.Time { return time.UnixMilli(1700000000000) }}
	c.prevNonce.Store(1700000000000)

	require.Equal(t, int64(1700000000001), c.nextNonce())
	require.Equal(t, int64(1700000000002), c.nextNonce())

	// часы ушли вперёд — nonce следует за ними
	c.now = func() time.Time { return time.UnixMilli(1700000005000) }
	require.Equal(t, int64(1700000005000), c.nextNonce())
}

func TestPlaceMarketSendsSignedIocLimit(t *testing.T) {
	fx := newHLFixture(t)

	order, err := fx.client.PlaceMarket(context.Background(), models.OrderRequest{
		Symbol:   "ETH",
		Side:     models.SideBuy,
		Type:     models.OrderTypeMarket,
		Quantity: "0.5000",
	})
	require.NoError(t, err)
	require.Equal(t, "77", order.OrderID)
	require.Equal(t, "FILLED", order.Status)
	require.Equal(t, 2001.3, order.Price)
	require.Equal(t, 0.5, order.ExecutedQuantity)

	require.Len(t, fx.exchangeBodies, 1)
	var body struct {
		Action struct {
			Type     string `json:"type"`
			Grouping string `json:"grouping"`
			Orders   []struct {
				Asset int    `json:"a"`
				IsBuy bool   `json:"b"`
				Price string `json:"p"`
				Size  string `json:"s"`
				Type  struct {
					Limit *struct {
						Tif string `json:"tif"`
					} `json:"limit"`
				} `json:"t"`
			} `json:"orders"`
		} `json:"action"`
		Nonce     int64 `json:"nonce"`
		Signature struct {
			R string `json:"r"`
			S string `json:"s"`
			V uint8  `json:"v"`
		} `json:"signature"`
	}
	require.NoError(t, json.Unmarshal(fx.exchangeBodies[0], &body))

	require.Equal(t, "order", body.Action.Type)
	require.Equal(t, "na", body.Action.Grouping)
	require.Len(t, body.Action.Orders, 1)
	o := body.Action.Orders[0]
	require.Equal(t, 0, o.Asset) // ETH — первый в universe
	require.True(t, o.IsBuy)
	// mid 2000 * 1.05 = 2100, хвостовые нули срезаны
	require.Equal(t, "2100", o.Price)
	require.Equal(t, "0.5", o.Size)
	require.NotNil(t, o.Type.Limit)
	require.Equal(t, "Ioc", o.Type.Limit.Tif)

	require.Greater(t, body.Nonce, int64(0))
	require.Len(t, body.Signature.R, 66)
	require.Len(t, body.Signature.S, 66)
	require.Contains(t, []uint8{27, 28}, body.Signature.V)
}

func TestPlaceLimitSendsGtc(t *testing.T) {
	fx := newHLFixture(t)
	fx.exchangeReply = `{"status":"ok","response":{"type":"order","data":{"statuses":[{"resting":{"oid":88}}]}}}`

	order, err := fx.client.PlaceLimit(context.Background(), models.OrderRequest{
		Symbol:   "ETH",
		Side:     models.SideSell,
		Type:     models.OrderTypeLimit,
		Quantity: "0.5000",
		Price:    "1990.50",
	})
	require.NoError(t, err)
	require.Equal(t, "88", order.OrderID)
	require.Equal(t, "NEW", order.Status)
	require.Equal(t, models.OrderTypeLimit, order.Type)

	require.Len(t, fx.exchangeBodies, 1)
	var body struct {
		Action struct {
			Orders []struct {
				IsBuy bool   `json:"b"`
				Price string `json:"p"`
				Size  string `json:"s"`
				Type  struct {
					Limit *struct {
						Tif string `json:"tif"`
					} `json:"limit"`
				} `json:"t"`
			} `json:"orders"`
		} `json:"action"`
	}
	require.NoError(t, json.Unmarshal(fx.exchangeBodies[0], &body))
	require.Len(t, body.Action.Orders, 1)
	o := body.Action.Orders[0]
	require.False(t, o.IsBuy)
	require.Equal(t, "1990.5", o.Price)
	require.Equal(t, "0.5", o.Size)
	require.NotNil(t, o.Type.Limit)
	require.Equal(t, "Gtc", o.Type.Limit.Tif)
}

func TestUnrepresentableQuantityFailsBeforeWire(t *testing.T) {
	fx := newHLFixture(t)

	// 9 знаков после точки не переживают 8-значный round-trip —
	// ордер режется до сети, а не уходит молча округлённым
	_, err := fx.client.PlaceMarket(context.Background(), models.OrderRequest{
		Symbol:   "ETH",
		Side:     models.SideBuy,
		Quantity: "0.123456789",
	})
	require.Error(t, err)
	require.Equal(t, models.KindSignature, models.KindOf(err))
	require.Empty(t, fx.exchangeBodies)

	_, err = fx.client.PlaceStop(context.Background(), models.ConditionalRequest{
		Symbol:       "ETH",
		Side:         models.SideSell,
		Type:         models.OrderTypeStopMarket,
		TriggerPrice: "1900.000000001",
	})
	require.Error(t, err)
	require.Equal(t, models.KindSignature, models.KindOf(err))
	require.Empty(t, fx.exchangeBodies)
}

func TestPlaceStopRejectedBecomesExchangeError(t *testing.T) {
	fx := newHLFixture(t)
	fx.exchangeReply = `{"status":"ok","response":{"type":"order","data":{"statuses":[{"error":"Order would trigger immediately"}]}}}`

	_, err := fx.client.PlaceStop(context.Background(), models.ConditionalRequest{
		Symbol:       "ETH",
		Side:         models.SideSell,
		Type:         models.OrderTypeStopMarket,
		TriggerPrice: "1900",
	})
	require.Error(t, err)
	require.Equal(t, models.KindExchange, models.KindOf(err))
}

func TestExchangeActionFailsClosedWithoutKey(t *testing.T) {
	fx := newHLFixture(t)
	fx.client.creds.PrivateKey = ""

	_, err := fx.client.PlaceMarket(context.Background(), models.OrderRequest{
		Symbol:   "ETH",
		Side:     models.SideBuy,
		Quantity: "0.5",
	})
	require.Error(t, err)
	require.Equal(t, models.KindConfiguration, models.KindOf(err))
	require.Empty(t, fx.exchangeBodies)
}

func TestCancelAllWithoutOpenOrdersSkipsAction(t *testing.T) {
	fx := newHLFixture(t)

	require.NoError(t, fx.client.CancelAllOrders(context.Background(), "ETH"))
	require.Empty(t, fx.exchangeBodies)
}

func TestPositionsFromClearinghouse(t *testing.T) {
	fx := newHLFixture(t)
	fx.stateReply = `{"withdrawable":"100.5","marginSummary":{"accountValue":"250.0"},` +
		`"assetPositions":[{"position":{"coin":"ETH","szi":"-1.5","entryPx":"2000","liquidationPx":"2400","unrealizedPnl":"-10","leverage":{"value":5}}},` +
		`{"position":{"coin":"BTC","szi":"0","entryPx":"0"}}]}`

	positions, err := fx.client.Positions(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, positions, 1) // нулевой BTC отброшен
	p := positions[0]
	require.Equal(t, models.PositionShort, p.Side)
	require.Equal(t, -1.5, p.Size)
	require.Equal(t, 5, p.Leverage)

	balances, err := fx.client.Balances(context.Background())
	require.NoError(t, err)
	require.Len(t, balances, 1)
	require.Equal(t, "USDC", balances[0].Asset)
	require.Equal(t, 250.0, balances[0].Total)
	require.Equal(t, 100.5, balances[0].Available)
}
