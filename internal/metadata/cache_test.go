package metadata

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trade_gateway/internal/models"
)

func testFetch(calls *int) FetchFunc {
	return func(ctx context.Context) (map[string]Asset, error) {
		*calls++
		return map[string]Asset{
			"BTCUSDT": {Symbol: "BTCUSDT", AssetID: 1, PricePrecision: 2, QuantityPrecision: 3},
		}, nil
	}
}

func TestCacheLazyRefreshOnce(t *testing.T) {
	calls := 0
	c := NewCache(testFetch(&calls))

	a, err := c.Get(context.Background(), "BTCUSDT")
	require.NoError(t, err)
	assert.Equal(t, 1, a.AssetID)
	assert.Equal(t, 1, calls)

	// второй Get — из таблицы, без фетча
	_, err = c.Get(context.Background(), "BTCUSDT")
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestCacheTTLExpiry(t *testing.T) {
	calls := 0
	c := NewCache(testFetch(&calls))

	now := time.Now()
	c.now = func() time.Time { return now }

	_, err := c.Get(context.Background(), "BTCUSDT")
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	now = now.Add(2 * time.Hour)
	_, err = c.Get(context.Background(), "BTCUSDT")
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestCacheUnknownSymbol(t *testing.T) {
	calls := 0
	c := NewCache(testFetch(&calls))

	_, err := c.Get(context.Background(), "NOPEUSDT")
	require.Error(t, err)
	assert.Equal(t, models.KindDomain, models.KindOf(err))
}

func TestFormatRespectsPrecision(t *testing.T) {
	calls := 0
	c := NewCache(testFetch(&calls))
	require.NoError(t, c.Refresh(context.Background()))

	assert.Equal(t, "0.123", c.FormatQuantity("BTCUSDT", 0.123456))
	assert.Equal(t, "0.020", c.FormatQuantity("BTCUSDT", 0.02))
	assert.Equal(t, "50000.10", c.FormatPrice("BTCUSDT", 50000.1))
}

func TestFormatFallbackPrecision(t *testing.T) {
	c := NewCache(func(ctx context.Context) (map[string]Asset, error) {
		return map[string]Asset{}, nil
	})
	// меты нет — 8 знаков, вызов не падает
	assert.Equal(t, "0.12345600", c.FormatQuantity("XXXUSDT", 0.123456))
}
