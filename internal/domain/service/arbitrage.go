package service

import (
	"fmt"

	"github.com/google/uuid"

	"defilens/internal/domain/model"
)

// ArbitrageSpread finds the cheapest and dearest quote and reports the spread
// between them. On equal prices the quote that appears first wins.
func (e *Engine) ArbitrageSpread(symbol string, quotes []model.ExchangeQuote) (*model.ArbitrageOpportunity, error) {
	if len(quotes) == 0 {
		return nil, fmt.Errorf("arbitrage %s: %w", symbol, ErrEmptyInput)
	}

	buy, sell := 0, 0
	for i, q := range quotes {
		if !validQuote(q.Price) {
			return nil, fmt.Errorf("arbitrage %s: %w: %s quoted %v", symbol, ErrInvalidRatio, q.Exchange, q.Price)
		}
		if q.Price < quotes[buy].Price {
			buy = i
		}
		if q.Price > quotes[sell].Price {
			sell = i
		}
	}

	minPx := quotes[buy].Price
	maxPx := quotes[sell].Price
	profitPct := (maxPx - minPx) / minPx * 100

	return &model.ArbitrageOpportunity{
		ID:               uuid.NewString(),
		Token:            symbol,
		Profitable:       profitPct > e.params.ProfitThreshold,
		ProfitPercentage: round(profitPct, 4),
		BuyExchange:      quotes[buy].Exchange,
		SellExchange:     quotes[sell].Exchange,
		BuyPrice:         minPx,
		SellPrice:        maxPx,
		VolumeRequired:   e.params.MinVolumeUSD,
		GasCostEstimate:  e.params.GasCostUSD,
		Timestamp:        e.now().UnixMilli(),
	}, nil
}
