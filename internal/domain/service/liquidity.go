package service

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"defilens/internal/domain/model"
)

// LiquidityRiskScore 0 (safe) to 100 (risky). Deep, busy pools score lower;
// impermanent-loss risk adds 2 points per percent.
func LiquidityRiskScore(pool model.PoolData) float64 {
	tvlScore := math.Min(pool.TVL/1e7*30, 30)
	volumeScore := math.Min(pool.Volume24h/1e6*20, 20)
	ilPenalty := pool.ILRisk * 2
	return clamp(100-tvlScore-volumeScore-ilPenalty, 0, 100)
}

// RecommendationTier thresholds are exclusive: exactly 15 is a Buy.
func RecommendationTier(netAPY float64) model.Recommendation {
	switch {
	case netAPY > 15:
		return model.RecommendationStrongBuy
	case netAPY > 8:
		return model.RecommendationBuy
	case netAPY > 3:
		return model.RecommendationHold
	default:
		return model.RecommendationAvoid
	}
}

func PositionMetrics(pool model.PoolData, capital float64) model.PositionMetrics {
	return model.PositionMetrics{
		DailyFees:  capital * (pool.APY / 365) / 100,
		ILEstimate: capital * (pool.ILRisk / 100),
		NetAPY:     pool.APY - pool.ILRisk,
	}
}

// OptimalRange band of +-2 daily volatilities around price
func OptimalRange(price, dailyVolatility float64) model.PriceRange {
	return model.PriceRange{
		Lower:   price * (1 - dailyVolatility*2),
		Upper:   price * (1 + dailyVolatility*2),
		Current: price,
	}
}

// AnalyzePool builds a liquidity provision plan for capital in pool.
func (e *Engine) AnalyzePool(pool model.PoolData, capital float64) (*model.LiquidityAnalysis, error) {
	if !ValidateAddress(pool.Address) {
		return nil, fmt.Errorf("pool %q: %w", pool.Address, ErrInvalidAddress)
	}
	if capital < 0 || math.IsNaN(capital) {
		return nil, fmt.Errorf("capital %v: %w", capital, ErrInvalidAmount)
	}

	price := pool.Price
	if price <= 0 {
		price = e.params.ReferencePrice
	}
	pm := PositionMetrics(pool, capital)

	return &model.LiquidityAnalysis{
		ID:                      uuid.NewString(),
		Pool:                    pool,
		Capital:                 capital,
		RecommendedAllocation:   math.Min(capital*e.params.MaxAllocationShare, e.params.MaxAllocationUSD),
		OptimalRange:            OptimalRange(price, e.params.DailyVolatility),
		ExpectedDailyFees:       pm.DailyFees,
		ImpermanentLossEstimate: pm.ILEstimate,
		NetAPY:                  pm.NetAPY,
		RiskScore:               LiquidityRiskScore(pool),
		Recommendation:          RecommendationTier(pm.NetAPY),
		Timestamp:               e.now().UnixMilli(),
	}, nil
}
