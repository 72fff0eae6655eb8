package container

import (
	"defilens/internal/application/port"
	"defilens/internal/application/service"
)

// Sources market data inputs; any of them may be nil
type Sources struct {
	Prices port.PriceSource
	Pools  port.PoolSource
	MEV    port.MEVSource
}

type Container struct {
	repo    port.ReportRepository
	engine  port.MetricsCalculator
	sources Sources

	analyticsService *service.AnalyticsService
}

func New(repo port.ReportRepository, engine port.MetricsCalculator, sources Sources) *Container {
	return &Container{
		repo:    repo,
		engine:  engine,
		sources: sources,
	}
}

func (c *Container) Repository() port.ReportRepository {
	return c.repo
}

func (c *Container) AnalyticsService() *service.AnalyticsService {
	if c.analyticsService == nil {
		c.analyticsService = service.NewAnalyticsService(service.AnalyticsDeps{
			Engine: c.engine,
			Prices: c.sources.Prices,
			Pools:  c.sources.Pools,
			MEV:    c.sources.MEV,
			Repo:   c.repo,
		})
	}
	return c.analyticsService
}
