package report

import "defilens/internal/domain/model"

// Renderer turns analysis results into display lines
type Renderer interface {
	Portfolio(m *model.PortfolioMetrics) string
	Arbitrage(arb *model.ArbitrageOpportunity) string
	ImpermanentLoss(initialRatio, currentRatio, il float64) string
	Liquidity(a *model.LiquidityAnalysis) string
	MEV(ops []model.MEVOpportunity) string
	InvalidTokens(tokens []model.TokenData) string
}

// RatioMove price ratio scenario for impermanent loss
type RatioMove struct {
	Initial float64
	Current float64
}

// Summary of one analysis round
type Summary struct {
	Reports  int
	Failures int
}
