package service

import "defilens/internal/domain/model"

// SpreadSignal where a cross-venue spread sits relative to the profit threshold
type SpreadSignal int

const (
	SpreadFlat       SpreadSignal = iota // no price difference
	SpreadThin                           // positive but not above the threshold
	SpreadProfitable                     // strictly above the threshold
)

// ClassifySpread uses the same strict comparison as Profitable in ArbitrageSpread.
func ClassifySpread(profitPct, threshold float64) SpreadSignal {
	switch {
	case profitPct > threshold:
		return SpreadProfitable
	case profitPct > 0:
		return SpreadThin
	default:
		return SpreadFlat
	}
}

// PriceGap absolute sell minus buy price of an opportunity
func PriceGap(arb *model.ArbitrageOpportunity) float64 {
	return arb.SellPrice - arb.BuyPrice
}
