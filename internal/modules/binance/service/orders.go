package service

import (
	"context"
	"net/http"

	"trade_gateway/internal/models"
	"trade_gateway/internal/signing"
)

func (c *Client) PlaceMarket(ctx context.Context, req models.OrderRequest) (models.Order, error) {
	p := signing.NewParams().
		Add("symbol", req.Symbol).
		Add("side", req.Side).
		Add("type", models.OrderTypeMarket).
		Add("quantity", req.Quantity)
	if req.ReduceOnly {
		p.Add("reduceOnly", "true")
	}
	if req.ClientOrderID != "" {
		p.Add("newClientOrderId", req.ClientOrderID)
	}

	var resp orderResponse
	if err := c.do(ctx, http.MethodPost, "/fapi/v1/order", p, &resp); err != nil {
		return models.Order{}, err
	}
	return mapOrder(resp), nil
}

func (c *Client) PlaceLimit(ctx context.Context, req models.OrderRequest) (models.Order, error) {
	p := signing.NewParams().
		Add("symbol", req.Symbol).
		Add("side", req.Side).
		Add("type", models.OrderTypeLimit).
		Add("timeInForce", "GTC").
		Add("quantity", req.Quantity).
		Add("price", req.Price)
	if req.ReduceOnly {
		p.Add("reduceOnly", "true")
	}
	if req.ClientOrderID != "" {
		p.Add("newClientOrderId", req.ClientOrderID)
	}

	var resp orderResponse
	if err := c.do(ctx, http.MethodPost, "/fapi/v1/order", p, &resp); err != nil {
		return models.Order{}, err
	}
	return mapOrder(resp), nil
}

// PlaceStop ставит условный ордер closePosition-семантики: по триггеру
// закрывается вся позиция, какого бы размера она к тому моменту ни была.
func (c *Client) PlaceStop(ctx context.Context, req models.ConditionalRequest) (models.Order, error) {
	p := signing.NewParams().
		Add("symbol", req.Symbol).
		Add("side", req.Side).
		Add("type", req.Type).
		Add("stopPrice", req.TriggerPrice)
	if req.ClosePosition {
		p.Add("closePosition", "true")
	}

	var resp orderResponse
	if err := c.do(ctx, http.MethodPost, "/fapi/v1/order", p, &resp); err != nil {
		return models.Order{}, err
	}
	return mapOrder(resp), nil
}

func (c *Client) CancelAllOrders(ctx context.Context, symbol string) error {
	p := signing.NewParams().Add("symbol", symbol)
	return c.do(ctx, http.MethodDelete, "/fapi/v1/allOpenOrders", p, nil)
}

func (c *Client) OpenOrders(ctx context.Context, symbol string) ([]models.Order, error) {
	p := signing.NewParams().Add("symbol", symbol)
	var resp []orderResponse
	if err := c.do(ctx, http.MethodGet, "/fapi/v1/openOrders", p, &resp); err != nil {
		return nil, err
	}
	out := make([]models.Order, 0, len(resp))
	for _, o := range resp {
		out = append(out, mapOrder(o))
	}
	return out, nil
}

func (c *Client) CancelOrder(ctx context.Context, symbol, orderID string) error {
	p := signing.NewParams().
		Add("symbol", symbol).
		Add("orderId", orderID)
	return c.do(ctx, http.MethodDelete, "/fapi/v1/order", p, nil)
}
