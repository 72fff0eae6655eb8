package port

import (
	"context"

	"defilens/internal/domain/model"
)

type ReportRepository interface {
	SavePortfolioReport(ctx context.Context, m *model.PortfolioMetrics) error
	SaveArbitrageOpportunity(ctx context.Context, arb *model.ArbitrageOpportunity) error
	SaveLiquidityAnalysis(ctx context.Context, a *model.LiquidityAnalysis) error
	SaveMEVOpportunities(ctx context.Context, blockNumber uint64, ops []model.MEVOpportunity) error

	// Connection management
	Close() error
}
