package service

import (
	"context"
	"net/http"

	"trade_gateway/internal/metadata"
)

func (c *Client) fetchAssets(ctx context.Context) (map[string]metadata.Asset, error) {
	var info struct {
		Symbols []struct {
			Symbol            string `json:"symbol"`
			Status            string `json:"status"`
			PricePrecision    int32  `json:"pricePrecision"`
			QuantityPrecision int32  `json:"quantityPrecision"`
		} `json:"symbols"`
	}
	if err := c.do(ctx, http.MethodGet, "/fapi/v1/exchangeInfo", nil, &info); err != nil {
		return nil, err
	}
	table := make(map[string]metadata.Asset, len(info.Symbols))
	for i, s := range info.Symbols {
		if s.Status != "" && s.Status != "TRADING" {
			continue
		}
		table[s.Symbol] = metadata.Asset{
			Symbol:            s.Symbol,
			AssetID:           i,
			PricePrecision:    s.PricePrecision,
			QuantityPrecision: s.QuantityPrecision,
		}
	}
	return table, nil
}
