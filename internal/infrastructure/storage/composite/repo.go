package composite

import (
	"context"

	"defilens/internal/application/port"
	"defilens/internal/domain/model"
)

// Repo writes every report to all backends and returns the first error.
type Repo struct {
	repos []port.ReportRepository
}

func New(repos ...port.ReportRepository) *Repo {
	out := make([]port.ReportRepository, 0, len(repos))
	for _, r := range repos {
		if r != nil {
			out = append(out, r)
		}
	}
	return &Repo{repos: out}
}

func (r *Repo) Len() int { return len(r.repos) }

func (r *Repo) each(fn func(port.ReportRepository) error) error {
	var firstErr error
	for _, repo := range r.repos {
		if err := fn(repo); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (r *Repo) SavePortfolioReport(ctx context.Context, m *model.PortfolioMetrics) error {
	return r.each(func(repo port.ReportRepository) error { return repo.SavePortfolioReport(ctx, m) })
}

func (r *Repo) SaveArbitrageOpportunity(ctx context.Context, arb *model.ArbitrageOpportunity) error {
	return r.each(func(repo port.ReportRepository) error { return repo.SaveArbitrageOpportunity(ctx, arb) })
}

func (r *Repo) SaveLiquidityAnalysis(ctx context.Context, a *model.LiquidityAnalysis) error {
	return r.each(func(repo port.ReportRepository) error { return repo.SaveLiquidityAnalysis(ctx, a) })
}

func (r *Repo) SaveMEVOpportunities(ctx context.Context, blockNumber uint64, ops []model.MEVOpportunity) error {
	return r.each(func(repo port.ReportRepository) error { return repo.SaveMEVOpportunities(ctx, blockNumber, ops) })
}

func (r *Repo) Close() error {
	return r.each(func(repo port.ReportRepository) error { return repo.Close() })
}

var _ port.ReportRepository = (*Repo)(nil)
