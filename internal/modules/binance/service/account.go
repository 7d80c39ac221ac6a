package service

import (
	"context"
	"net/http"
	"strconv"

	"trade_gateway/internal/models"
	"trade_gateway/internal/signing"
)

func (c *Client) SetLeverage(ctx context.Context, symbol string, leverage int) error {
	p := signing.NewParams().
		Add("symbol", symbol).
		Add("leverage", strconv.Itoa(leverage))
	return c.do(ctx, http.MethodPost, "/fapi/v1/leverage", p, nil)
}

func (c *Client) LastPrice(ctx context.Context, symbol string) (float64, error) {
	p := signing.NewParams().Add("symbol", symbol)
	var resp struct {
		Symbol string `json:"symbol"`
		Price  string `json:"price"`
	}
	if err := c.do(ctx, http.MethodGet, "/fapi/v1/ticker/price", p, &resp); err != nil {
		return 0, err
	}
	return f(resp.Price), nil
}

func (c *Client) Positions(ctx context.Context, symbol string) ([]models.Position, error) {
	p := signing.NewParams()
	if symbol != "" {
		p.Add("symbol", symbol)
	}
	var resp []positionRisk
	if err := c.do(ctx, http.MethodGet, "/fapi/v2/positionRisk", p, &resp); err != nil {
		return nil, err
	}
	out := make([]models.Position, 0, len(resp))
	for _, pr := range resp {
		if pos, ok := mapPosition(pr); ok {
			out = append(out, pos)
		}
	}
	return out, nil
}

func (c *Client) Balances(ctx context.Context) ([]models.Balance, error) {
	var resp []struct {
		Asset            string `json:"asset"`
		Balance          string `json:"balance"`
		AvailableBalance string `json:"availableBalance"`
	}
	if err := c.do(ctx, http.MethodGet, "/fapi/v2/balance", signing.NewParams(), &resp); err != nil {
		return nil, err
	}
	out := make([]models.Balance, 0, len(resp))
	for _, b := range resp {
		out = append(out, models.Balance{
			Asset:     b.Asset,
			Total:     f(b.Balance),
			Available: f(b.AvailableBalance),
		})
	}
	return out, nil
}
