package signing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleAction() map[string]any {
	return map[string]any{
		"type":     "order",
		"grouping": "na",
		"orders": []any{
			map[string]any{
				"a": 4,
				"b": true,
				"p": "50000",
				"s": "0.02",
				"r": false,
				"t": map[string]any{"limit": map[string]any{"tif": "Ioc"}},
			},
		},
	}
}

func TestActionHashDeterministic(t *testing.T) {
	first, err := ActionHash(sampleAction(), "", 1700000000000, nil)
	require.NoError(t, err)
	assert.Len(t, first, 32)

	// порядок итерации map в Go случайный — гоняем много раз
	for i := 0; i < 50; i++ {
		h, err := ActionHash(sampleAction(), "", 1700000000000, nil)
		require.NoError(t, err)
		require.Equal(t, first, h, "iteration %d", i)
	}
}

func TestActionHashMapInsertionOrderIndependent(t *testing.T) {
	a := map[string]any{}
	a["type"] = "cancel"
	a["cancels"] = []any{map[string]any{"a": 1, "o": int64(7)}}

	b := map[string]any{}
	b["cancels"] = []any{map[string]any{"o": int64(7), "a": 1}}
	b["type"] = "cancel"

	h1, err := ActionHash(a, "", 1, nil)
	require.NoError(t, err)
	h2, err := ActionHash(b, "", 1, nil)
	require.NoError(t, err)
	assert.Equal(t, h1, h2)
}

func TestActionHashNonceSensitivity(t *testing.T) {
	h1, err := ActionHash(sampleAction(), "", 1700000000000, nil)
	require.NoError(t, err)
	h2, err := ActionHash(sampleAction(), "", 1700000000001, nil)
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
}

func TestActionHashVaultAndExpirySensitivity(t *testing.T) {
	base, err := ActionHash(sampleAction(), "", 1, nil)
	require.NoError(t, err)

	withVault, err := ActionHash(sampleAction(), "0x3333333333333333333333333333333333333333", 1, nil)
	require.NoError(t, err)
	assert.NotEqual(t, base, withVault)

	exp := int64(1800000000000)
	withExpiry, err := ActionHash(sampleAction(), "", 1, &exp)
	require.NoError(t, err)
	assert.NotEqual(t, base, withExpiry)
}

func TestActionHashContentSensitivity(t *testing.T) {
	a := sampleAction()
	h1, err := ActionHash(a, "", 1, nil)
	require.NoError(t, err)

	b := sampleAction()
	b["orders"].([]any)[0].(map[string]any)["s"] = "0.03"
	h2, err := ActionHash(b, "", 1, nil)
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
}

func TestActionHashNormalizesPriceSize(t *testing.T) {
	a := sampleAction()
	b := sampleAction()
	b["orders"].([]any)[0].(map[string]any)["p"] = "50000.0"
	b["orders"].([]any)[0].(map[string]any)["s"] = "0.0200"

	h1, err := ActionHash(a, "", 1, nil)
	require.NoError(t, err)
	h2, err := ActionHash(b, "", 1, nil)
	require.NoError(t, err)
	// "50000.0"/"0.0200" канонизируются до "50000"/"0.02"
	assert.Equal(t, h1, h2)
}

func TestSignL1Action(t *testing.T) {
	auth, err := SignL1Action(testPrivKey, sampleAction(), "", 1700000000000, nil, true)
	require.NoError(t, err)

	assert.Equal(t, int64(1700000000000), auth.Nonce)
	assert.Empty(t, auth.VaultAddress)
	assert.Len(t, auth.Signature.R, 66) // 0x + 32 байта
	assert.Len(t, auth.Signature.S, 66)
	assert.Contains(t, []uint8{27, 28}, auth.Signature.V)

	// детерминизм всей подписи при фиксированных входах
	again, err := SignL1Action(testPrivKey, sampleAction(), "", 1700000000000, nil, true)
	require.NoError(t, err)
	assert.Equal(t, auth.Signature, again.Signature)

	// mainnet/testnet маркер меняет подпись
	testnet, err := SignL1Action(testPrivKey, sampleAction(), "", 1700000000000, nil, false)
	require.NoError(t, err)
	assert.NotEqual(t, auth.Signature, testnet.Signature)
}
