package signing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trade_gateway/internal/models"
)

func TestHmacSignDeterministic(t *testing.T) {
	p := NewParams().
		Add("symbol", "BTCUSDT").
		Add("side", "BUY").
		Add("timestamp", "1700000000000")

	s1, err := HmacSign("secret", p)
	require.NoError(t, err)
	s2, err := HmacSign("secret", p)
	require.NoError(t, err)
	assert.Equal(t, s1, s2)
	assert.Len(t, s1, 64) // hex sha256
}

func TestHmacSignParamSensitivity(t *testing.T) {
	base := NewParams().Add("symbol", "BTCUSDT").Add("qty", "0.02")
	changed := NewParams().Add("symbol", "BTCUSDT").Add("qty", "0.03")

	s1, err := HmacSign("secret", base)
	require.NoError(t, err)
	s2, err := HmacSign("secret", changed)
	require.NoError(t, err)
	assert.NotEqual(t, s1, s2)
}

func TestHmacSignPreservesInsertionOrder(t *testing.T) {
	ab := NewParams().Add("a", "1").Add("b", "2")
	ba := NewParams().Add("b", "2").Add("a", "1")

	assert.Equal(t, "a=1&b=2", ab.Encode())
	assert.Equal(t, "b=2&a=1", ba.Encode())

	s1, err := HmacSign("secret", ab)
	require.NoError(t, err)
	s2, err := HmacSign("secret", ba)
	require.NoError(t, err)
	// порядок вставки — часть подписываемой строки
	assert.NotEqual(t, s1, s2)
}

func TestHmacSignMissingSecret(t *testing.T) {
	_, err := HmacSign("", NewParams().Add("a", "1"))
	require.Error(t, err)
	assert.Equal(t, models.KindConfiguration, models.KindOf(err))
}
