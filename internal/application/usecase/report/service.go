package report

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"defilens/internal/application/port"
	"defilens/internal/application/service"
	"defilens/internal/domain/model"
)

type ServiceDeps struct {
	Analytics *service.AnalyticsService
	Sink      port.Sink
	Renderer  Renderer

	Positions   []model.PortfolioPosition
	Tokens      []model.TokenData
	Symbols     []string
	Exchanges   []string
	Pools       []string
	Capital     float64
	BlockNumber uint64
	RatioMoves  []RatioMove

	// 0 runs a single round
	Interval time.Duration
}

// Service runs every configured analysis and writes the rendered results.
type Service struct {
	deps ServiceDeps
	st   *State
	now  func() time.Time
}

func NewService(deps ServiceDeps) *Service {
	return &Service{deps: deps, st: NewState(), now: time.Now}
}

func (s *Service) Run(ctx context.Context) error {
	if s.deps.Analytics == nil || s.deps.Sink == nil || s.deps.Renderer == nil {
		return errors.New("report service: analytics, sink and renderer required")
	}

	sum := s.RunOnce(ctx)
	if s.deps.Interval <= 0 {
		if sum.Failures > 0 {
			return errors.New("report round had failures")
		}
		return nil
	}

	ticker := time.NewTicker(s.deps.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			_ = s.deps.Sink.NewLine()
			return ctx.Err()
		case <-ticker.C:
			s.RunOnce(ctx)
		}
	}
}

// RunOnce runs one round; a failing analysis is logged and the round goes on.
func (s *Service) RunOnce(ctx context.Context) Summary {
	var sum Summary
	a, r := s.deps.Analytics, s.deps.Renderer

	write := func(line string) {
		sum.Reports++
		_ = s.deps.Sink.WriteReport(s.now(), line)
	}
	fail := func(err error, what string) {
		sum.Failures++
		log.Error().Err(err).Str("analysis", what).Msg("analysis failed")
	}

	if len(s.deps.Tokens) > 0 {
		_ = s.deps.Sink.WriteHeader("Tokens")
		write(r.InvalidTokens(a.ValidateTokens(s.deps.Tokens)))
	}

	if len(s.deps.Positions) > 0 {
		_ = s.deps.Sink.WriteHeader("Portfolio")
		if m, err := a.AnalyzePortfolio(ctx, s.deps.Positions); err != nil {
			fail(err, "portfolio")
		} else {
			write(r.Portfolio(m))
		}
	}

	if len(s.deps.Symbols) > 0 {
		_ = s.deps.Sink.WriteHeader("Arbitrage")
		for _, sym := range s.deps.Symbols {
			arb, err := a.ScanArbitrage(ctx, sym, s.deps.Exchanges)
			if err != nil {
				fail(err, "arbitrage")
				continue
			}
			write(s.st.Apply(arb.Token, arb.ProfitPercentage).Arrow() + " " + r.Arbitrage(arb))
		}
	}

	if len(s.deps.RatioMoves) > 0 {
		_ = s.deps.Sink.WriteHeader("Impermanent loss")
		for _, mv := range s.deps.RatioMoves {
			write(r.ImpermanentLoss(mv.Initial, mv.Current, a.ImpermanentLoss(mv.Initial, mv.Current)))
		}
	}

	if len(s.deps.Pools) > 0 {
		_ = s.deps.Sink.WriteHeader("Liquidity")
		for _, addr := range s.deps.Pools {
			la, err := a.OptimizeLiquidity(ctx, addr, s.deps.Capital)
			if err != nil {
				fail(err, "liquidity")
				continue
			}
			write(r.Liquidity(la))
		}
	}

	if s.deps.BlockNumber > 0 {
		_ = s.deps.Sink.WriteHeader("MEV")
		if ops, err := a.DetectMEV(ctx, s.deps.BlockNumber); err != nil {
			fail(err, "mev")
		} else {
			write(r.MEV(ops))
		}
	}

	log.Info().Int("reports", sum.Reports).Int("failures", sum.Failures).Msg("analysis round finished")
	return sum
}
