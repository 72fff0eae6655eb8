package memory

import (
	"context"
	"sync"

	"defilens/internal/application/port"
	"defilens/internal/domain/model"
)

// Repo in-process report store, used when no storage backend is enabled.
type Repo struct {
	mu        sync.RWMutex
	portfolio []model.PortfolioMetrics
	arbitrage map[string]model.ArbitrageOpportunity // token -> latest
	liquidity map[string]model.LiquidityAnalysis    // pool address -> latest
	mev       map[uint64][]model.MEVOpportunity
}

func New() *Repo {
	return &Repo{
		arbitrage: make(map[string]model.ArbitrageOpportunity),
		liquidity: make(map[string]model.LiquidityAnalysis),
		mev:       make(map[uint64][]model.MEVOpportunity),
	}
}

func (r *Repo) SavePortfolioReport(_ context.Context, m *model.PortfolioMetrics) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.portfolio = append(r.portfolio, *m)
	return nil
}

func (r *Repo) SaveArbitrageOpportunity(_ context.Context, arb *model.ArbitrageOpportunity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.arbitrage[arb.Token] = *arb
	return nil
}

func (r *Repo) SaveLiquidityAnalysis(_ context.Context, a *model.LiquidityAnalysis) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.liquidity[a.Pool.Address] = *a
	return nil
}

func (r *Repo) SaveMEVOpportunities(_ context.Context, blockNumber uint64, ops []model.MEVOpportunity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mev[blockNumber] = append(r.mev[blockNumber], ops...)
	return nil
}

func (r *Repo) Close() error { return nil }

func (r *Repo) PortfolioReports() []model.PortfolioMetrics {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]model.PortfolioMetrics(nil), r.portfolio...)
}

func (r *Repo) LatestArbitrage(token string) (model.ArbitrageOpportunity, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	arb, ok := r.arbitrage[token]
	return arb, ok
}

func (r *Repo) LatestLiquidity(address string) (model.LiquidityAnalysis, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.liquidity[address]
	return a, ok
}

func (r *Repo) MEVOpportunities(blockNumber uint64) []model.MEVOpportunity {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]model.MEVOpportunity(nil), r.mev[blockNumber]...)
}

var _ port.ReportRepository = (*Repo)(nil)
