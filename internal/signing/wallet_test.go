package signing

import (
	"encoding/json"
	"math/big"
	"strconv"
	"testing"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trade_gateway/internal/models"
)

const testPrivKey = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

func TestSignWalletMessageRecoversSigner(t *testing.T) {
	key, err := crypto.HexToECDSA(testPrivKey)
	require.NoError(t, err)
	signerAddr := crypto.PubkeyToAddress(key.PublicKey)

	user := "0x1111111111111111111111111111111111111111"
	nowMs := int64(1700000000000)

	auth, err := SignWalletMessage(
		map[string]string{"symbol": "BTCUSDT", "side": "BUY"},
		user, signerAddr.Hex(), testPrivKey,
		nowMs, 0,
	)
	require.NoError(t, err)

	assert.Equal(t, nowMs, auth.Timestamp)
	assert.Equal(t, nowMs*1000, auth.Nonce)
	assert.Equal(t, DefaultRecvWindow, auth.RecvWindow)

	// восстанавливаем подписанта из подписи
	merged := map[string]string{
		"symbol":     "BTCUSDT",
		"side":       "BUY",
		"timestamp":  strconv.FormatInt(auth.Timestamp, 10),
		"recvWindow": strconv.FormatInt(auth.RecvWindow, 10),
	}
	canonical, err := json.Marshal(merged)
	require.NoError(t, err)

	packed, err := walletTuple.Pack(
		string(canonical),
		common.HexToAddress(user),
		signerAddr,
		big.NewInt(auth.Nonce),
	)
	require.NoError(t, err)
	digest := accounts.TextHash(crypto.Keccak256(packed))

	sig := common.FromHex(auth.Signature)
	require.Len(t, sig, 65)
	sig[64] -= 27
	pub, err := crypto.SigToPub(digest, sig)
	require.NoError(t, err)
	assert.Equal(t, signerAddr, crypto.PubkeyToAddress(*pub))
}

func TestSignWalletMessageKeyOrderIndependent(t *testing.T) {
	key, _ := crypto.HexToECDSA(testPrivKey)
	signer := crypto.PubkeyToAddress(key.PublicKey).Hex()
	user := "0x2222222222222222222222222222222222222222"

	a1, err := SignWalletMessage(map[string]string{"b": "1", "a": "2"}, user, signer, testPrivKey, 1700000000000, 0)
	require.NoError(t, err)
	a2, err := SignWalletMessage(map[string]string{"a": "2", "b": "1"}, user, signer, testPrivKey, 1700000000000, 0)
	require.NoError(t, err)

	// canonical JSON сортирует ключи — порядок входной map не важен
	assert.Equal(t, a1.Signature, a2.Signature)
}

func TestSignWalletMessageMissingCreds(t *testing.T) {
	_, err := SignWalletMessage(nil, "", "0x1", testPrivKey, 1, 0)
	require.Error(t, err)
	assert.Equal(t, models.KindConfiguration, models.KindOf(err))

	_, err = SignWalletMessage(nil, "0x1", "0x2", "", 1, 0)
	require.Error(t, err)
	assert.Equal(t, models.KindConfiguration, models.KindOf(err))
}
