package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"defilens/internal/domain/model"
)

const testPool = "0x8ad599c3A0ff1De082011EFDDc58f1908eb6e6D8"

func TestRecommendationTier(t *testing.T) {
	cases := []struct {
		apy  float64
		want model.Recommendation
	}{
		{16, model.RecommendationStrongBuy},
		{15, model.RecommendationBuy},
		{8.01, model.RecommendationBuy},
		{8, model.RecommendationHold},
		{3.5, model.RecommendationHold},
		{3, model.RecommendationAvoid},
		{-10, model.RecommendationAvoid},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, RecommendationTier(tc.apy), "net apy %v", tc.apy)
	}
}

func TestLiquidityRiskScore(t *testing.T) {
	// deep pool: 30 + 20 off, il 5 -> 10 off
	deep := model.PoolData{TVL: 5e7, Volume24h: 5e6, ILRisk: 5}
	assert.InDelta(t, 40, LiquidityRiskScore(deep), 1e-9)

	// shallow pool: 1e6 tvl -> 3, 1e5 volume -> 2, il 1 -> 2
	shallow := model.PoolData{TVL: 1e6, Volume24h: 1e5, ILRisk: 1}
	assert.InDelta(t, 93, LiquidityRiskScore(shallow), 1e-9)

	assert.Equal(t, 0.0, LiquidityRiskScore(model.PoolData{TVL: 1e8, Volume24h: 1e8, ILRisk: 40}))
	assert.Equal(t, 100.0, LiquidityRiskScore(model.PoolData{}))
}

func TestOptimalRange(t *testing.T) {
	r := OptimalRange(2000, 0.05)
	assert.InDelta(t, 1800, r.Lower, 1e-9)
	assert.InDelta(t, 2200, r.Upper, 1e-9)
	assert.Equal(t, 2000.0, r.Current)
}

func TestAnalyzePool(t *testing.T) {
	e := NewEngine(DefaultParams())

	pool := model.PoolData{Address: testPool, Token0: "USDC", Token1: "ETH", FeeTier: 0.3, TVL: 2e7, Volume24h: 3e6, APY: 18.25, ILRisk: 2}
	a, err := e.AnalyzePool(pool, 10000)
	require.NoError(t, err)

	assert.InDelta(t, 8000, a.RecommendedAllocation, 1e-9)
	assert.InDelta(t, 5, a.ExpectedDailyFees, 1e-9)
	assert.InDelta(t, 200, a.ImpermanentLossEstimate, 1e-9)
	assert.InDelta(t, 16.25, a.NetAPY, 1e-9)
	assert.Equal(t, model.RecommendationStrongBuy, a.Recommendation)
	assert.InDelta(t, 46, a.RiskScore, 1e-9)
	// no pool price, falls back to the reference price
	assert.Equal(t, 2000.0, a.OptimalRange.Current)
}

func TestAnalyzePoolAllocationCap(t *testing.T) {
	e := NewEngine(DefaultParams())

	pool := model.PoolData{Address: testPool, APY: 5, ILRisk: 1, Price: 3000}
	a, err := e.AnalyzePool(pool, 1_000_000)
	require.NoError(t, err)
	assert.Equal(t, 50000.0, a.RecommendedAllocation)
	assert.Equal(t, 3000.0, a.OptimalRange.Current)
	assert.Equal(t, model.RecommendationHold, a.Recommendation)
}

func TestAnalyzePoolInvalid(t *testing.T) {
	e := NewEngine(DefaultParams())

	_, err := e.AnalyzePool(model.PoolData{Address: "pool-1"}, 100)
	assert.True(t, errors.Is(err, ErrInvalidAddress))

	_, err = e.AnalyzePool(model.PoolData{Address: testPool}, -1)
	assert.True(t, errors.Is(err, ErrInvalidAmount))
}
