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

type scheme int

const (
	schemeNone scheme = iota
	schemeHmac
)

// Таблица эндпоинт → схема подписи. Всё, чего тут нет, не подписывается.
var endpointScheme = map[string]scheme{
	"/fapi/v1/order":         schemeHmac,
	"/fapi/v1/allOpenOrders": schemeHmac,
	"/fapi/v1/openOrders":    schemeHmac,
	"/fapi/v1/leverage":      schemeHmac,
	"/fapi/v2/positionRisk":  schemeHmac,
	"/fapi/v2/balance":       schemeHmac,
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
		baseURL: cfg.Binance.RestURL,
		creds:   store.Get("binance"),
		now:     time.Now,
	}
	c.meta = metadata.NewCache(c.fetchAssets)
	return c
}

func (c *Client) Exchange() string      { return "binance" }
func (c *Client) Meta() *metadata.Cache { return c.meta }

// do выполняет запрос по таблице схем. Для HMAC к бизнес-параметрам
// доклеиваются timestamp/recvWindow, строка подписывается и подпись
// добавляется хвостом к уже собранной строке — без пересериализации.
// GET/DELETE несут параметры в query, POST — в form-теле.
func (c *Client) do(ctx context.Context, method, path string, business *signing.Params, out any) error {
	op := "binance " + method + " " + path

	if business == nil {
		business = signing.NewParams()
	}

	payload := business.Encode()
	if endpointScheme[path] == schemeHmac {
		if c.creds.APIKey == "" {
			return models.ConfigurationError(op, "api key is not set")
		}
		business.Add("timestamp", strconv.FormatInt(c.now().UnixMilli(), 10))
		business.Add("recvWindow", strconv.FormatInt(signing.DefaultRecvWindow, 10))
		sig, err := signing.HmacSign(c.creds.APISecret, business)
		if err != nil {
			return err
		}
		payload = business.Encode() + "&signature=" + sig
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
	if c.creds.APIKey != "" {
		req.Header.Set("X-MBX-APIKEY", c.creds.APIKey)
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
