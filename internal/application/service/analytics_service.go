package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"defilens/internal/application/port"
	"defilens/internal/domain/model"
	dsvc "defilens/internal/domain/service"

	"github.com/rs/zerolog/log"
)

// ErrNoSource analysis needs a data source that was not configured
var ErrNoSource = errors.New("data source not configured")

type AnalyticsDeps struct {
	Engine port.MetricsCalculator
	Prices port.PriceSource
	Pools  port.PoolSource
	MEV    port.MEVSource
	Repo   port.ReportRepository
}

type AnalyticsService struct {
	engine port.MetricsCalculator
	prices port.PriceSource
	pools  port.PoolSource
	mev    port.MEVSource
	repo   port.ReportRepository
}

func NewAnalyticsService(deps AnalyticsDeps) *AnalyticsService {
	return &AnalyticsService{
		engine: deps.Engine,
		prices: deps.Prices,
		pools:  deps.Pools,
		mev:    deps.MEV,
		repo:   deps.Repo,
	}
}

// ImpermanentLoss percent loss for a price ratio move
func (s *AnalyticsService) ImpermanentLoss(initialRatio, currentRatio float64) float64 {
	il := s.engine.ImpermanentLoss(initialRatio, currentRatio)
	log.Debug().
		Float64("initial_ratio", initialRatio).
		Float64("current_ratio", currentRatio).
		Float64("il_pct", il).
		Msg("impermanent loss computed")
	return il
}

// AnalyzePortfolio computes and stores portfolio metrics
func (s *AnalyticsService) AnalyzePortfolio(ctx context.Context, positions []model.PortfolioPosition) (*model.PortfolioMetrics, error) {
	m, err := s.engine.PortfolioMetrics(positions)
	if err != nil {
		return nil, fmt.Errorf("portfolio metrics: %w", err)
	}

	if err := s.repo.SavePortfolioReport(ctx, m); err != nil {
		log.Error().Err(err).Int("positions", m.PositionCount).Msg("save portfolio report failed")
		return m, err
	}

	log.Info().
		Str("total_value", m.TotalValue.StringFixed(2)).
		Float64("pnl_pct", m.PnLPercentage).
		Float64("volatility", m.Volatility).
		Float64("sharpe", m.SharpeRatio).
		Str("largest", m.LargestPosition).
		Msg("portfolio analyzed")
	return m, nil
}

// ScanArbitrage fetches quotes for symbol and evaluates the spread. Only
// profitable opportunities are persisted.
func (s *AnalyticsService) ScanArbitrage(ctx context.Context, symbol string, exchanges []string) (*model.ArbitrageOpportunity, error) {
	if s.prices == nil {
		return nil, fmt.Errorf("arbitrage %s: %w", symbol, ErrNoSource)
	}
	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	quotes, err := s.prices.Quotes(ctx, symbol, exchanges)
	if err != nil {
		return nil, fmt.Errorf("quotes %s from %s: %w", symbol, s.prices.Name(), err)
	}

	arb, err := s.engine.ArbitrageSpread(symbol, quotes)
	if err != nil {
		return nil, err
	}

	if arb.Profitable {
		if err := s.repo.SaveArbitrageOpportunity(ctx, arb); err != nil {
			log.Error().Err(err).Str("symbol", arb.Token).Float64("profit", arb.ProfitPercentage).Msg("save arbitrage opportunity failed")
			return arb, err
		}
		log.Info().
			Str("symbol", arb.Token).
			Str("buy", arb.BuyExchange).
			Str("sell", arb.SellExchange).
			Float64("profit", arb.ProfitPercentage).
			Msg("arbitrage opportunity detected")
	} else {
		log.Debug().
			Str("symbol", arb.Token).
			Float64("profit", arb.ProfitPercentage).
			Msg("spread below threshold")
	}

	return arb, nil
}

// OptimizeLiquidity analyzes providing capital to the pool at poolAddress
func (s *AnalyticsService) OptimizeLiquidity(ctx context.Context, poolAddress string, capital float64) (*model.LiquidityAnalysis, error) {
	if !dsvc.ValidateAddress(poolAddress) {
		return nil, fmt.Errorf("pool %q: %w", poolAddress, dsvc.ErrInvalidAddress)
	}
	if s.pools == nil {
		return nil, fmt.Errorf("pool %s: %w", poolAddress, ErrNoSource)
	}

	pool, err := s.pools.Pool(ctx, poolAddress)
	if err != nil {
		return nil, fmt.Errorf("load pool %s: %w", poolAddress, err)
	}

	a, err := s.engine.AnalyzePool(*pool, capital)
	if err != nil {
		return nil, err
	}

	if err := s.repo.SaveLiquidityAnalysis(ctx, a); err != nil {
		log.Error().Err(err).Str("pool", poolAddress).Msg("save liquidity analysis failed")
		return a, err
	}

	log.Info().
		Str("pool", poolAddress).
		Float64("net_apy", a.NetAPY).
		Float64("risk", a.RiskScore).
		Str("recommendation", a.Recommendation.String()).
		Msg("liquidity analyzed")
	return a, nil
}

// DetectMEV filters the block's candidates down to opportunities worth the gas
func (s *AnalyticsService) DetectMEV(ctx context.Context, blockNumber uint64) ([]model.MEVOpportunity, error) {
	if s.mev == nil {
		return nil, fmt.Errorf("mev block %d: %w", blockNumber, ErrNoSource)
	}

	candidates, err := s.mev.Candidates(ctx, blockNumber)
	if err != nil {
		return nil, fmt.Errorf("mev candidates block %d: %w", blockNumber, err)
	}

	ops := s.engine.FilterMEV(blockNumber, candidates)
	if len(ops) == 0 {
		log.Debug().Uint64("block", blockNumber).Int("candidates", len(candidates)).Msg("no mev opportunities")
		return ops, nil
	}

	if err := s.repo.SaveMEVOpportunities(ctx, blockNumber, ops); err != nil {
		log.Error().Err(err).Uint64("block", blockNumber).Msg("save mev opportunities failed")
		return ops, err
	}

	log.Info().
		Uint64("block", blockNumber).
		Int("candidates", len(candidates)).
		Int("opportunities", len(ops)).
		Float64("best_profit", ops[0].ProfitAfterGas).
		Msg("mev opportunities detected")
	return ops, nil
}

// ValidateTokens returns the tokens whose contract address is malformed
func (s *AnalyticsService) ValidateTokens(tokens []model.TokenData) []model.TokenData {
	var bad []model.TokenData
	for _, t := range tokens {
		if err := dsvc.ValidateToken(t); err != nil {
			log.Warn().Err(err).Str("symbol", t.Symbol).Msg("token rejected")
			bad = append(bad, t)
		}
	}
	return bad
}
