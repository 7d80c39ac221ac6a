package service

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/bytedance/sonic"

	"trade_gateway/internal/metadata"
	"trade_gateway/internal/models"
	"trade_gateway/internal/modules/config"
	"trade_gateway/internal/modules/credentials"
	"trade_gateway/internal/signing"
)

// Hyperliquid: /info — неподписанные чтения, /exchange — L1-действия,
// подписанные phantom-агентом (EIP-712 над keccak от msgpack-действия).
type Client struct {
	http    *http.Client
	baseURL string
	creds   credentials.Credentials
	meta    *metadata.Cache
	mainnet bool

	prevNonce atomic.Int64
	now       func() time.Time
}

func NewClient(cfg *config.Config, store *credentials.Store) *Client {
	c := &Client{
		http:    &http.Client{Timeout: 30 * time.Second},
		baseURL: cfg.Hyperliquid.RestURL,
		creds:   store.Get("hyperliquid"),
		mainnet: !cfg.Hyperliquid.Testnet,
		now:     time.Now,
	}
	c.prevNonce.Store(c.now().UnixMilli())
	c.meta = metadata.NewCache(c.fetchAssets)
	return c
}

func (c *Client) Exchange() string      { return "hyperliquid" }
func (c *Client) Meta() *metadata.Cache { return c.meta }

// nextNonce — монотонный, миллисекундный. Биржа отвергает повторы.
func (c *Client) nextNonce() int64 {
	for {
		prev := c.prevNonce.Load()
		next := c.now().UnixMilli()
		if next <= prev {
			next = prev + 1
		}
		if c.prevNonce.CompareAndSwap(prev, next) {
			return next
		}
	}
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	op := "hyperliquid POST " + path

	payload, err := sonic.Marshal(body)
	if err != nil {
		return models.NetworkError(op, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return models.NetworkError(op, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return models.NetworkError(op, err)
	}
	defer resp.Body.Close()

	rb, _ := io.ReadAll(resp.Body)
	if resp.StatusCode/100 != 2 {
		return models.ExchangeError(op, resp.Status, string(rb))
	}
	if out != nil {
		if err := json.Unmarshal(rb, out); err != nil {
			return models.NetworkError(op, err)
		}
	}
	return nil
}

// info — неподписанное чтение состояния.
func (c *Client) info(ctx context.Context, req map[string]any, out any) error {
	return c.post(ctx, "/info", req, out)
}

// exchangeAction подписывает действие и шлёт его на /exchange.
// Значения nonce в подписи и в теле запроса — один и тот же integer.
func (c *Client) exchangeAction(ctx context.Context, action any, out *exchangeResponse) error {
	nonce := c.nextNonce()
	auth, err := signing.SignL1Action(c.creds.PrivateKey, action, c.creds.VaultAddress, nonce, nil, c.mainnet)
	if err != nil {
		return err
	}

	body := map[string]any{
		"action":    action,
		"nonce":     auth.Nonce,
		"signature": auth.Signature,
	}
	if auth.VaultAddress != "" {
		body["vaultAddress"] = auth.VaultAddress
	}

	if err := c.post(ctx, "/exchange", body, out); err != nil {
		return err
	}
	if out != nil && out.Status != "ok" {
		return models.ExchangeError("hyperliquid /exchange", out.Status, string(out.Raw))
	}
	return nil
}
