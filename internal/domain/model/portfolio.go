package model

import "github.com/shopspring/decimal"

// PortfolioPosition a single holding. AllocationPct is 0-100; the sum across a
// portfolio is the caller's concern.
type PortfolioPosition struct {
	Token         string          `json:"token"`
	Amount        decimal.Decimal `json:"amount"`
	EntryPrice    float64         `json:"entry_price"`
	CurrentPrice  float64         `json:"current_price"`
	PnL           float64         `json:"pnl"`
	AllocationPct float64         `json:"allocation_percentage"`
}

// Value amount * current price.
func (p PortfolioPosition) Value() decimal.Decimal {
	return p.Amount.Mul(decimal.NewFromFloat(p.CurrentPrice))
}

// Cost amount * entry price.
func (p PortfolioPosition) Cost() decimal.Decimal {
	return p.Amount.Mul(decimal.NewFromFloat(p.EntryPrice))
}

// PortfolioMetrics aggregate statistics over a set of positions
type PortfolioMetrics struct {
	ID                   string          `json:"id"`
	TotalValue           decimal.Decimal `json:"total_value"`
	TotalInvested        decimal.Decimal `json:"total_invested"`
	UnrealizedPnL        float64         `json:"unrealized_pnl"`
	PnLPercentage        float64         `json:"pnl_percentage"`
	PositionCount        int             `json:"position_count"`
	Volatility           float64         `json:"volatility"`
	SharpeRatio          float64         `json:"sharpe_ratio"`
	LargestPosition      string          `json:"largest_position"`
	DiversificationScore float64         `json:"diversification_score"`
	Timestamp            int64           `json:"ts_ms"`
}
