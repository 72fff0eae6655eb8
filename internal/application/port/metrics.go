package port

import "defilens/internal/domain/model"

// MetricsCalculator pure analytics over caller supplied inputs
type MetricsCalculator interface {
	ImpermanentLoss(initialRatio, currentRatio float64) float64
	PortfolioMetrics(positions []model.PortfolioPosition) (*model.PortfolioMetrics, error)
	ArbitrageSpread(symbol string, quotes []model.ExchangeQuote) (*model.ArbitrageOpportunity, error)
	AnalyzePool(pool model.PoolData, capital float64) (*model.LiquidityAnalysis, error)
	FilterMEV(blockNumber uint64, candidates []model.MEVCandidate) []model.MEVOpportunity
}
