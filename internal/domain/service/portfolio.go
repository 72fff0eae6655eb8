package service

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"defilens/internal/domain/model"
)

// PortfolioMetrics aggregates value, PnL and risk statistics. Monetary sums are
// accumulated in decimal; the derived ratios are float64.
func (e *Engine) PortfolioMetrics(positions []model.PortfolioPosition) (*model.PortfolioMetrics, error) {
	largest, err := LargestPosition(positions)
	if err != nil {
		return nil, err
	}
	for _, p := range positions {
		if !validPrice(p.EntryPrice) || !validPrice(p.CurrentPrice) {
			return nil, fmt.Errorf("position %s: %w: entry %v current %v", p.Token, ErrInvalidRatio, p.EntryPrice, p.CurrentPrice)
		}
	}

	totalValue := decimal.Zero
	totalInvested := decimal.Zero
	pnls := make([]float64, len(positions))
	for i, p := range positions {
		totalValue = totalValue.Add(p.Value())
		totalInvested = totalInvested.Add(p.Cost())
		pnls[i] = p.PnL
	}

	pnl := totalValue.Sub(totalInvested).InexactFloat64()
	pnlPct := 0.0
	if totalInvested.IsPositive() {
		pnlPct = pnl / totalInvested.InexactFloat64() * 100
	}

	return &model.PortfolioMetrics{
		ID:                   uuid.NewString(),
		TotalValue:           totalValue,
		TotalInvested:        totalInvested,
		UnrealizedPnL:        pnl,
		PnLPercentage:        round(pnlPct, 2),
		PositionCount:        len(positions),
		Volatility:           round(Volatility(pnls), 4),
		SharpeRatio:          round(SharpeRatio(pnls, e.params.RiskFreeRate), 4),
		LargestPosition:      largest,
		DiversificationScore: DiversificationScore(positions),
		Timestamp:            e.now().UnixMilli(),
	}, nil
}
