package service

import (
	"sort"

	"defilens/internal/domain/model"
)

// GasCostUSD cost of gas units at gasPriceGwei with ETH at ethPriceUSD
func GasCostUSD(gas int64, gasPriceGwei, ethPriceUSD float64) float64 {
	return float64(gas) * gasPriceGwei * 1e-9 * ethPriceUSD
}

// FilterMEV keeps candidates whose profit after gas clears MinMEVProfit,
// best first. Candidates with equal profit keep their input order.
func (e *Engine) FilterMEV(blockNumber uint64, candidates []model.MEVCandidate) []model.MEVOpportunity {
	out := make([]model.MEVOpportunity, 0, len(candidates))
	for _, c := range candidates {
		gasCost := GasCostUSD(c.GasRequired, e.params.GasPriceGwei, e.params.EthPriceUSD)
		profit := c.EstimatedProfit - gasCost
		if profit <= e.params.MinMEVProfit {
			continue
		}
		out = append(out, model.MEVOpportunity{
			MEVCandidate:   c,
			BlockNumber:    blockNumber,
			ProfitAfterGas: profit,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ProfitAfterGas > out[j].ProfitAfterGas
	})
	return out
}
