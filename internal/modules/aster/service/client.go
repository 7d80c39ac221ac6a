package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"trade_gateway/internal/metadata"
	"trade_gateway/internal/models"
	"trade_gateway/internal/modules/config"
	"trade_gateway/internal/modules/credentials"
	"trade_gateway/internal/signing"
)

// Aster подписывает приватные вызовы wallet-схемой: canonical JSON из
// бизнес-параметров + stringified timestamp/recvWindow, keccak256 от
// abi-кортежа (payload, user, signer, nonce), personal-sign.
var signedEndpoints = map[string]bool{
	"/fapi/v3/order":         true,
	"/fapi/v3/allOpenOrders": true,
	"/fapi/v3/openOrders":    true,
	"/fapi/v3/leverage":      true,
	"/fapi/v3/positionRisk":  true,
	"/fapi/v3/balance":       true,
}

type Client struct {
	http    *http.Client
	baseURL string
	creds   credentials.Credentials
	meta    *metadata.Cache

	now func() time.Time
}

func NewClient(cfg *config.Config, store *credentials.Store) *Client {
	c := &Client{
		http:    &http.Client{Timeout: 30 * time.Second},
		baseURL: cfg.Aster.RestURL,
		creds:   store.Get("aster"),
		now:     time.Now,
	}
	c.meta = metadata.NewCache(c.fetchAssets)
	return c
}

func (c *Client) Exchange() string      { return "aster" }
func (c *Client) Meta() *metadata.Cache { return c.meta }

// do собирает запрос. Бизнес-параметры при коллизии ключей всегда
// побеждают — подпись добавляет только свои auth-поля. На провод
// timestamp/recvWindow идут числовыми оригиналами из подписи, а не их
// строковыми копиями из canonical payload.
func (c *Client) do(ctx context.Context, method, path string, business map[string]string, out any) error {
	op := "aster " + method + " " + path

	payload := ""
	if signedEndpoints[path] {
		var recvWindow int64
		if v, ok := business["recvWindow"]; ok {
			recvWindow, _ = strconv.ParseInt(v, 10, 64)
		}
		// если вызывающий задал timestamp сам, подписываем ровно его:
		// подпись и провод обязаны видеть одно и то же значение
		nowMs := c.now().UnixMilli()
		if v, ok := business["timestamp"]; ok {
			ts, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return models.SignatureError(op, "bad timestamp %q", v)
			}
			nowMs = ts
		}
		auth, err := signing.SignWalletMessage(
			business,
			c.creds.WalletAddress,
			c.creds.SignerAddress,
			c.creds.PrivateKey,
			nowMs,
			recvWindow,
		)
		if err != nil {
			return err
		}

		p := signing.NewParams()
		for _, kv := range sortedPairs(business) {
			p.Add(kv[0], kv[1])
		}
		if _, ok := business["recvWindow"]; !ok {
			p.Add("recvWindow", strconv.FormatInt(auth.RecvWindow, 10))
		}
		if _, ok := business["timestamp"]; !ok {
			p.Add("timestamp", strconv.FormatInt(auth.Timestamp, 10))
		}
		p.Add("user", auth.User)
		p.Add("signer", auth.Signer)
		p.Add("nonce", strconv.FormatInt(auth.Nonce, 10))
		p.Add("signature", auth.Signature)
		payload = p.Encode()
	} else {
		p := signing.NewParams()
		for _, kv := range sortedPairs(business) {
			p.Add(kv[0], kv[1])
		}
		payload = p.Encode()
	}

	var (
		req *http.Request
		err error
	)
	if method == http.MethodPost {
		req, err = http.NewRequestWithContext(ctx, method, c.baseURL+path, strings.NewReader(payload))
		if req != nil {
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		}
	} else {
		url := c.baseURL + path
		if payload != "" {
			url += "?" + payload
		}
		req, err = http.NewRequestWithContext(ctx, method, url, nil)
	}
	if err != nil {
		return models.NetworkError(op, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return models.NetworkError(op, err)
	}
	defer resp.Body.Close()

	rb, _ := io.ReadAll(resp.Body)
	if resp.StatusCode/100 != 2 {
		var apiErr struct {
			Code int    `json:"code"`
			Msg  string `json:"msg"`
		}
		if json.Unmarshal(rb, &apiErr) == nil && apiErr.Code != 0 {
			return models.ExchangeError(op, strconv.Itoa(apiErr.Code), apiErr.Msg)
		}
		return models.ExchangeError(op, strconv.Itoa(resp.StatusCode), string(rb))
	}

	if out != nil {
		if err := json.Unmarshal(rb, out); err != nil {
			return models.NetworkError(op, err)
		}
	}
	return nil
}
