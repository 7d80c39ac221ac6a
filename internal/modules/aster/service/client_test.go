package service

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trade_gateway/internal/models"
	"trade_gateway/internal/modules/config"
	"trade_gateway/internal/modules/credentials"
)

const testPrivKey = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	key, err := crypto.HexToECDSA(testPrivKey)
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.Aster.RestURL = srv.URL
	cfg.Aster.WalletAddress = "0x1111111111111111111111111111111111111111"
	cfg.Aster.SignerAddress = crypto.PubkeyToAddress(key.PublicKey).Hex()
	cfg.Aster.PrivateKey = testPrivKey

	c := NewClient(cfg, credentials.NewStore(cfg))
	c.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return c
}

func TestWalletAuthFieldsOnWire(t *testing.T) {
	var gotBody string
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/fapi/v3/order", r.URL.Path)
		require.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		_, _ = w.Write([]byte(`{"orderId":7,"symbol":"BTCUSDT","side":"BUY","type":"MARKET","status":"NEW","origQty":"0.02","executedQty":"0.02"}`))
	}))

	_, err := c.PlaceMarket(context.Background(), models.OrderRequest{
		Symbol: "BTCUSDT", Side: models.SideBuy, Quantity: "0.02",
	})
	require.NoError(t, err)

	vals, err := url.ParseQuery(gotBody)
	require.NoError(t, err)

	// числовые оригиналы из подписи, не перегенерённые
	assert.Equal(t, "1700000000000", vals.Get("timestamp"))
	assert.Equal(t, "1700000000000000", vals.Get("nonce")) // мс * 1000
	assert.Equal(t, "50000", vals.Get("recvWindow"))
	assert.Equal(t, c.creds.WalletAddress, vals.Get("user"))
	assert.Equal(t, c.creds.SignerAddress, vals.Get("signer"))
	assert.Len(t, vals.Get("signature"), 132) // 0x + 65 байт hex
	// бизнес-параметры не тронуты
	assert.Equal(t, "BTCUSDT", vals.Get("symbol"))
	assert.Equal(t, "0.02", vals.Get("quantity"))
}

func TestWalletCallerTimestampNotDuplicated(t *testing.T) {
	var gotBody string
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		_, _ = w.Write([]byte(`{}`))
	}))

	err := c.do(context.Background(), http.MethodPost, "/fapi/v3/order", map[string]string{
		"symbol":    "BTCUSDT",
		"timestamp": "1600000000000",
	}, nil)
	require.NoError(t, err)

	vals, err := url.ParseQuery(gotBody)
	require.NoError(t, err)
	// ключ на проводе ровно один и подпись видела то же значение
	require.Len(t, vals["timestamp"], 1)
	assert.Equal(t, "1600000000000", vals.Get("timestamp"))
	assert.Equal(t, "1600000000000000", vals.Get("nonce"))
}

func TestWalletBadCallerTimestampRejected(t *testing.T) {
	called := false
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	err := c.do(context.Background(), http.MethodPost, "/fapi/v3/order", map[string]string{
		"symbol":    "BTCUSDT",
		"timestamp": "not-a-number",
	}, nil)
	require.Error(t, err)
	assert.Equal(t, models.KindSignature, models.KindOf(err))
	assert.False(t, called)
}

func TestWalletMissingCredsFailsClosed(t *testing.T) {
	called := false
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	c.creds.PrivateKey = ""

	err := c.SetLeverage(context.Background(), "BTCUSDT", 5)
	require.Error(t, err)
	assert.Equal(t, models.KindConfiguration, models.KindOf(err))
	assert.False(t, called)
}
