package signing

import (
	"bytes"
	"encoding/binary"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
	"github.com/vmihailenco/msgpack/v5"

	"trade_gateway/internal/models"
)

// EIP-712 домен phantom-агента фиксирован на стороне биржи.
const (
	l1DomainName    = "Exchange"
	l1DomainVersion = "1"
	l1ChainID       = 1337

	sourceMainnet = "a"
	sourceTestnet = "b"
)

type Signature struct {
	R string `json:"r"`
	S string `json:"s"`
	V uint8  `json:"v"`
}

type L1Auth struct {
	Nonce        int64     `json:"nonce"`
	Signature    Signature `json:"signature"`
	VaultAddress string    `json:"vaultAddress,omitempty"`
}

// normalizeActionTree рекурсивно приводит поля цены/размера ("p"/"s")
// к каноничному десятичному виду. Пропуск этого шага даёт расхождение
// подписи с тем, что пересчитает биржа.
func normalizeActionTree(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			if s, ok := val.(string); ok && (k == "p" || k == "s") {
				out[k] = NormalizeDecimal(s)
				continue
			}
			out[k] = normalizeActionTree(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = normalizeActionTree(e)
		}
		return out
	default:
		return v
	}
}

// ActionHash — keccak256(msgpack(action) || nonce(8BE) || vault || expiry).
// Байтовая раскладка хвоста: 1 нулевой байт без vault, иначе 0x01 + 20
// байт адреса; expiry добавляется как маркер 0x00 + 8 байт BE.
// Map-ключи кодируются отсортированными: итерация map в Go случайна,
// а хэш одного и того же action обязан совпадать от вызова к вызову.
// Типизированные wire-структуры кодируются в порядке полей как раньше.
func ActionHash(action any, vaultAddress string, nonce int64, expiresAfter *int64) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetSortMapKeys(true)
	if err := enc.Encode(normalizeActionTree(action)); err != nil {
		return nil, models.SignatureError("signing.l1", "msgpack: %v", err)
	}
	data := buf.Bytes()

	var tail [8]byte
	binary.BigEndian.PutUint64(tail[:], uint64(nonce))
	data = append(data, tail[:]...)

	if vaultAddress == "" {
		data = append(data, 0x00)
	} else {
		data = append(data, 0x01)
		data = append(data, common.HexToAddress(vaultAddress).Bytes()...)
	}

	if expiresAfter != nil {
		data = append(data, 0x00)
		binary.BigEndian.PutUint64(tail[:], uint64(*expiresAfter))
		data = append(data, tail[:]...)
	}

	return crypto.Keccak256(data), nil
}

// SignL1Action подписывает action по схеме phantom-агента: хэш действия
// становится connectionId EIP-712 структуры Agent{source, connectionId}.
func SignL1Action(
	privateKey string,
	action any,
	vaultAddress string,
	nonce int64,
	expiresAfter *int64,
	mainnet bool,
) (*L1Auth, error) {
	const op = "signing.l1"

	if privateKey == "" {
		return nil, models.ConfigurationError(op, "private key is not set")
	}

	hash, err := ActionHash(action, vaultAddress, nonce, expiresAfter)
	if err != nil {
		return nil, err
	}

	source := sourceMainnet
	if !mainnet {
		source = sourceTestnet
	}

	typedData := apitypes.TypedData{
		Types: apitypes.Types{
			"EIP712Domain": {
				{Name: "name", Type: "string"},
				{Name: "version", Type: "string"},
				{Name: "chainId", Type: "uint256"},
				{Name: "verifyingContract", Type: "address"},
			},
			"Agent": {
				{Name: "source", Type: "string"},
				{Name: "connectionId", Type: "bytes32"},
			},
		},
		PrimaryType: "Agent",
		Domain: apitypes.TypedDataDomain{
			Name:              l1DomainName,
			Version:           l1DomainVersion,
			ChainId:           math.NewHexOrDecimal256(l1ChainID),
			VerifyingContract: "0x0000000000000000000000000000000000000000",
		},
		Message: map[string]any{
			"source":       source,
			"connectionId": hexutil.Encode(hash),
		},
	}

	domainSeparator, err := typedData.HashStruct("EIP712Domain", typedData.Domain.Map())
	if err != nil {
		return nil, models.SignatureError(op, "domain separator: %v", err)
	}
	structHash, err := typedData.HashStruct(typedData.PrimaryType, typedData.Message)
	if err != nil {
		return nil, models.SignatureError(op, "struct hash: %v", err)
	}

	raw := append([]byte("\x19\x01"), domainSeparator...)
	raw = append(raw, structHash...)
	digest := crypto.Keccak256(raw)

	key, err := crypto.HexToECDSA(strings.TrimPrefix(privateKey, "0x"))
	if err != nil {
		return nil, models.ConfigurationError(op, "bad private key: %v", err)
	}

	sig, err := crypto.Sign(digest, key)
	if err != nil {
		return nil, models.SignatureError(op, "sign: %v", err)
	}

	return &L1Auth{
		Nonce: nonce,
		Signature: Signature{
			R: hexutil.Encode(sig[:32]),
			S: hexutil.Encode(sig[32:64]),
			V: sig[64] + 27,
		},
		VaultAddress: vaultAddress,
	}, nil
}
