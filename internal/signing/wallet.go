package signing

import (
	"encoding/json"
	"math/big"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"trade_gateway/internal/models"
)

const DefaultRecvWindow = int64(50000)

// WalletAuth — результат wallet-подписи. Timestamp/RecvWindow здесь
// числовые и именно в таком виде уходят на провод; их строковые копии
// живут только внутри подписанного canonical JSON. Пересчитывать их
// после подписи нельзя.
type WalletAuth struct {
	User       string
	Signer     string
	Nonce      int64 // микросекунды
	Timestamp  int64 // миллисекунды
	RecvWindow int64
	Signature  string // 0x + 65 байт hex
}

var (
	abiString, _  = abi.NewType("string", "", nil)
	abiAddress, _ = abi.NewType("address", "", nil)
	abiUint256, _ = abi.NewType("uint256", "", nil)

	walletTuple = abi.Arguments{
		{Type: abiString},
		{Type: abiAddress},
		{Type: abiAddress},
		{Type: abiUint256},
	}
)

// SignWalletMessage подписывает бизнес-параметры по wallet-схеме:
// keccak256(abi(canonicalJSON, user, signer, nonce)) + personal-sign.
// nowMs — текущее время в мс; nonce из него в микросекундах.
func SignWalletMessage(
	business map[string]string,
	user, signer, privateKey string,
	nowMs int64,
	recvWindow int64,
) (*WalletAuth, error) {
	const op = "signing.wallet"

	if user == "" || signer == "" {
		return nil, models.ConfigurationError(op, "wallet user/signer address is not set")
	}
	if privateKey == "" {
		return nil, models.ConfigurationError(op, "wallet private key is not set")
	}
	if recvWindow <= 0 {
		recvWindow = DefaultRecvWindow
	}

	nonce := nowMs * 1000
	timestamp := nowMs

	// Всё строками — но только для хэша. В запрос пойдут числа выше.
	merged := make(map[string]string, len(business)+2)
	for k, v := range business {
		merged[k] = v
	}
	merged["timestamp"] = strconv.FormatInt(timestamp, 10)
	merged["recvWindow"] = strconv.FormatInt(recvWindow, 10)

	// json.Marshal для map даёт лексикографический порядок ключей и
	// компактный вывод — ровно canonical форма, которую ждёт биржа.
	canonical, err := json.Marshal(merged)
	if err != nil {
		return nil, models.SignatureError(op, "canonical json: %v", err)
	}

	packed, err := walletTuple.Pack(
		string(canonical),
		common.HexToAddress(user),
		common.HexToAddress(signer),
		big.NewInt(nonce),
	)
	if err != nil {
		return nil, models.SignatureError(op, "abi pack: %v", err)
	}

	key, err := crypto.HexToECDSA(strings.TrimPrefix(privateKey, "0x"))
	if err != nil {
		return nil, models.ConfigurationError(op, "bad private key: %v", err)
	}

	hash := crypto.Keccak256(packed)
	sig, err := crypto.Sign(accounts.TextHash(hash), key)
	if err != nil {
		return nil, models.SignatureError(op, "sign: %v", err)
	}
	sig[64] += 27

	return &WalletAuth{
		User:       user,
		Signer:     signer,
		Nonce:      nonce,
		Timestamp:  timestamp,
		RecvWindow: recvWindow,
		Signature:  "0x" + common.Bytes2Hex(sig),
	}, nil
}
