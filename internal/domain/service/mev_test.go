package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"defilens/internal/domain/model"
)

func TestGasCostUSD(t *testing.T) {
	// 150k gas at 20 gwei, ETH 2000 -> 6 USD
	assert.InDelta(t, 6, GasCostUSD(150000, 20, 2000), 1e-9)
}

func TestFilterMEV(t *testing.T) {
	e := NewEngine(DefaultParams())

	// gas at 20 gwei / 2000 USD: 500k -> 20, 250k -> 10, 150k -> 6
	candidates := []model.MEVCandidate{
		{Type: model.MEVSandwich, EstimatedProfit: 100, GasRequired: 500000},
		{Type: model.MEVArbitrage, EstimatedProfit: 55, GasRequired: 250000},
		{Type: model.MEVLiquidation, EstimatedProfit: 4000, GasRequired: 150000},
		{Type: model.MEVFrontRunning, EstimatedProfit: 60, GasRequired: 250000}, // exactly 50 left
	}

	got := e.FilterMEV(18500000, candidates)
	require.Len(t, got, 2)
	assert.Equal(t, model.MEVLiquidation, got[0].Type)
	assert.InDelta(t, 3994, got[0].ProfitAfterGas, 1e-9)
	assert.Equal(t, model.MEVSandwich, got[1].Type)
	assert.InDelta(t, 80, got[1].ProfitAfterGas, 1e-9)
	assert.Equal(t, uint64(18500000), got[1].BlockNumber)
}

func TestFilterMEVEmpty(t *testing.T) {
	e := NewEngine(DefaultParams())
	assert.Empty(t, e.FilterMEV(1, nil))
}
