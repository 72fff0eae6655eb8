package service

import (
	"math"

	"defilens/internal/domain/model"
)

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Volatility sample standard deviation (n-1). Zero for fewer than two values.
func Volatility(values []float64) float64 {
	n := len(values)
	if n < 2 {
		return 0
	}
	m := mean(values)
	var ss float64
	for _, v := range values {
		d := v - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(n-1))
}

// SharpeRatio (mean - riskFree) / volatility, 0 when volatility is 0.
func SharpeRatio(values []float64, riskFreeRate float64) float64 {
	if len(values) == 0 {
		return 0
	}
	vol := Volatility(values)
	if vol == 0 {
		return 0
	}
	return (mean(values) - riskFreeRate) / vol
}

// DiversificationScore Herfindahl-Hirschman based score in [0, 100]; 100 is
// perfectly spread, 0 is a single holding.
func DiversificationScore(positions []model.PortfolioPosition) float64 {
	if len(positions) == 0 {
		return 0
	}
	var hhi float64
	for _, p := range positions {
		w := p.AllocationPct / 100
		hhi += w * w
	}
	return clamp((1-hhi)*100, 0, 100)
}

// LargestPosition token of the position with the highest allocation. The first
// one wins on ties.
func LargestPosition(positions []model.PortfolioPosition) (string, error) {
	if len(positions) == 0 {
		return "", ErrEmptyInput
	}
	best := 0
	for i := 1; i < len(positions); i++ {
		if positions[i].AllocationPct > positions[best].AllocationPct {
			best = i
		}
	}
	return positions[best].Token, nil
}

// validQuote rejects NaN, infinities and non-positive prices
func validQuote(px float64) bool {
	return px > 0 && !math.IsInf(px, 1)
}

// validPrice allows zero, rejects NaN, infinities and negatives
func validPrice(px float64) bool {
	return px >= 0 && !math.IsInf(px, 1)
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

func round(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(v*p) / p
}
