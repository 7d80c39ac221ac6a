package service

import (
	"context"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"trade_gateway/internal/models"
	"trade_gateway/internal/signing"
)

// Максимальный сдвиг от mid для "рыночного" IoC-лимитника.
const marketSlippage = 0.05

func (c *Client) assetID(ctx context.Context, symbol string) (int, error) {
	a, err := c.meta.Get(ctx, symbol)
	if err != nil {
		return 0, err
	}
	return a.AssetID, nil
}

// parseWire — число на провод с жёстким 8-значным round-trip:
// непредставимое значение режется ошибкой подписи, не округляется.
func parseWire(op, field, s string) (string, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return "", models.DomainError(op, "bad %s %q", field, s)
	}
	return signing.FloatToWire(v)
}

// PlaceMarket эмулирует market агрессивным IoC-лимитником от mid-цены:
// нативного market-типа у биржи нет.
func (c *Client) PlaceMarket(ctx context.Context, req models.OrderRequest) (models.Order, error) {
	mid, err := c.LastPrice(ctx, req.Symbol)
	if err != nil {
		return models.Order{}, err
	}
	if mid <= 0 {
		return models.Order{}, models.DomainError("hyperliquid.order", "no mid price for %s", req.Symbol)
	}

	limitPx := mid * (1 + marketSlippage)
	if req.Side != models.SideBuy {
		limitPx = mid * (1 - marketSlippage)
	}

	priceWire, err := parseWire("hyperliquid.order", "price", c.meta.FormatPrice(req.Symbol, limitPx))
	if err != nil {
		return models.Order{}, err
	}
	return c.submitLimit(ctx, req, priceWire, "Ioc", models.OrderTypeMarket)
}

// PlaceLimit ставит обычный GTC-лимитник по цене из запроса.
func (c *Client) PlaceLimit(ctx context.Context, req models.OrderRequest) (models.Order, error) {
	priceWire, err := parseWire("hyperliquid.order", "price", req.Price)
	if err != nil {
		return models.Order{}, err
	}
	return c.submitLimit(ctx, req, priceWire, "Gtc", models.OrderTypeLimit)
}

func (c *Client) submitLimit(ctx context.Context, req models.OrderRequest, priceWire, tif, orderType string) (models.Order, error) {
	asset, err := c.assetID(ctx, req.Symbol)
	if err != nil {
		return models.Order{}, err
	}
	sizeWire, err := parseWire("hyperliquid.order", "quantity", req.Quantity)
	if err != nil {
		return models.Order{}, err
	}

	wire := orderWire{
		Asset:      asset,
		IsBuy:      req.Side == models.SideBuy,
		Price:      priceWire,
		Size:       sizeWire,
		ReduceOnly: req.ReduceOnly,
		Type:       orderTypeWire{Limit: &limitWire{Tif: tif}},
	}
	if req.ClientOrderID != "" {
		// cloid — ровно 128 бит hex, произвольную строку сводим хэшем
		cl := "0x" + common.Bytes2Hex(crypto.Keccak256([]byte(req.ClientOrderID))[:16])
		wire.Cloid = &cl
	}
	action := orderAction{Type: "order", Orders: []orderWire{wire}, Grouping: "na"}

	var resp exchangeResponse
	if err := c.exchangeAction(ctx, action, &resp); err != nil {
		return models.Order{}, err
	}
	return c.mapOrderStatus(req, resp, orderType)
}

// PlaceStop — триггерный ордер с рыночным исполнением, reduce-only:
// закрывает позицию по достижении триггера независимо от её размера.
func (c *Client) PlaceStop(ctx context.Context, req models.ConditionalRequest) (models.Order, error) {
	asset, err := c.assetID(ctx, req.Symbol)
	if err != nil {
		return models.Order{}, err
	}

	tpsl := "sl"
	if req.Type == models.OrderTypeTakeProfit {
		tpsl = "tp"
	}
	trigger, err := parseWire("hyperliquid.order", "trigger price", req.TriggerPrice)
	if err != nil {
		return models.Order{}, err
	}

	wire := orderWire{
		Asset:      asset,
		IsBuy:      req.Side == models.SideBuy,
		Price:      trigger,
		Size:       "0",
		ReduceOnly: true,
		Type: orderTypeWire{Trigger: &triggerWire{
			IsMarket:  true,
			TriggerPx: trigger,
			TpSl:      tpsl,
		}},
	}
	action := orderAction{Type: "order", Orders: []orderWire{wire}, Grouping: "positionTpsl"}

	var resp exchangeResponse
	if err := c.exchangeAction(ctx, action, &resp); err != nil {
		return models.Order{}, err
	}
	return c.mapOrderStatus(models.OrderRequest{
		Symbol: req.Symbol, Side: req.Side, Quantity: "0",
	}, resp, req.Type)
}

func (c *Client) mapOrderStatus(req models.OrderRequest, resp exchangeResponse, orderType string) (models.Order, error) {
	statuses := resp.statuses()
	if len(statuses) == 0 {
		return models.Order{}, models.ExchangeError("hyperliquid.order", "ok", "empty statuses")
	}
	st := statuses[0]
	if st.Error != nil {
		return models.Order{}, models.ExchangeError("hyperliquid.order", "rejected", *st.Error)
	}

	qty, _ := strconv.ParseFloat(req.Quantity, 64)
	out := models.Order{
		Symbol:    req.Symbol,
		Side:      req.Side,
		Type:      orderType,
		Quantity:  qty,
		Timestamp: c.now().UnixMilli(),
	}
	switch {
	case st.Filled != nil:
		out.OrderID = strconv.FormatInt(st.Filled.Oid, 10)
		out.Status = "FILLED"
		out.Price, _ = strconv.ParseFloat(st.Filled.AvgPx, 64)
		out.ExecutedQuantity, _ = strconv.ParseFloat(st.Filled.TotalSz, 64)
	case st.Resting != nil:
		out.OrderID = strconv.FormatInt(st.Resting.Oid, 10)
		out.Status = "NEW"
		out.ExecutedQuantity = qty // executedQty появится позже
	}
	return out, nil
}

// CancelAllOrders снимает все висящие ордера по символу одним action.
func (c *Client) CancelAllOrders(ctx context.Context, symbol string) error {
	asset, err := c.assetID(ctx, symbol)
	if err != nil {
		return err
	}

	open, err := c.openOrderIDs(ctx, symbol)
	if err != nil {
		return err
	}
	if len(open) == 0 {
		return nil
	}

	cancels := make([]cancelWire, 0, len(open))
	for _, oid := range open {
		cancels = append(cancels, cancelWire{Asset: asset, Oid: oid})
	}

	var resp exchangeResponse
	return c.exchangeAction(ctx, cancelAction{Type: "cancel", Cancels: cancels}, &resp)
}

func (c *Client) openOrderIDs(ctx context.Context, symbol string) ([]int64, error) {
	if c.creds.WalletAddress == "" {
		return nil, models.ConfigurationError("hyperliquid.openOrders", "wallet address is not set")
	}
	var open []struct {
		Coin string `json:"coin"`
		Oid  int64  `json:"oid"`
	}
	err := c.info(ctx, map[string]any{
		"type": "openOrders",
		"user": c.creds.WalletAddress,
	}, &open)
	if err != nil {
		return nil, err
	}
	var ids []int64
	for _, o := range open {
		if o.Coin == symbol {
			ids = append(ids, o.Oid)
		}
	}
	return ids, nil
}
