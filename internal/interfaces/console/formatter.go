package console

import (
	"fmt"
	"strings"

	"defilens/internal/domain/model"
	dsvc "defilens/internal/domain/service"
)

const (
	ansiReset  = "\033[0m"
	ansiRed    = "\033[31m"
	ansiGreen  = "\033[32m"
	ansiYellow = "\033[33m"
	ansiDim    = "\033[2m"
)

func colorize(s, c string) string { return c + s + ansiReset }

func spreadColor(sig dsvc.SpreadSignal) string {
	switch sig {
	case dsvc.SpreadProfitable:
		return ansiGreen
	case dsvc.SpreadThin:
		return ansiYellow
	default:
		return ansiDim
	}
}

func pnlColor(pnl float64) string {
	switch {
	case pnl > 0:
		return ansiGreen
	case pnl < 0:
		return ansiRed
	default:
		return ansiYellow
	}
}

// Formatter renders analysis results as single console lines
type Formatter struct {
	ProfitThreshold float64
}

func NewFormatter(profitThreshold float64) *Formatter {
	return &Formatter{ProfitThreshold: profitThreshold}
}

func (f *Formatter) Portfolio(m *model.PortfolioMetrics) string {
	return fmt.Sprintf("value=%s invested=%s %s vol=%.4f sharpe=%.4f largest=%s div=%.1f positions=%d",
		m.TotalValue.StringFixed(2),
		m.TotalInvested.StringFixed(2),
		colorize(fmt.Sprintf("pnl=%+.2f (%+.2f%%)", m.UnrealizedPnL, m.PnLPercentage), pnlColor(m.UnrealizedPnL)),
		m.Volatility, m.SharpeRatio, m.LargestPosition, m.DiversificationScore, m.PositionCount)
}

func (f *Formatter) Arbitrage(arb *model.ArbitrageOpportunity) string {
	col := spreadColor(dsvc.ClassifySpread(arb.ProfitPercentage, f.ProfitThreshold))
	return fmt.Sprintf("%s buy %s@%.2f sell %s@%.2f %s %s",
		arb.Token,
		arb.BuyExchange, arb.BuyPrice,
		arb.SellExchange, arb.SellPrice,
		fmt.Sprintf("Δ=%.2f", dsvc.PriceGap(arb)),
		colorize(fmt.Sprintf("profit=%.4f%%", arb.ProfitPercentage), col))
}

func (f *Formatter) ImpermanentLoss(initialRatio, currentRatio, il float64) string {
	return fmt.Sprintf("ratio %.4f -> %.4f il=%.4f%%", initialRatio, currentRatio, il)
}

func (f *Formatter) Liquidity(a *model.LiquidityAnalysis) string {
	col := ansiRed
	switch a.Recommendation {
	case model.RecommendationStrongBuy, model.RecommendationBuy:
		col = ansiGreen
	case model.RecommendationHold:
		col = ansiYellow
	}
	return fmt.Sprintf("%s/%s alloc=%.2f range=[%.2f, %.2f] fees/day=%.2f net_apy=%.2f%% risk=%.1f %s",
		a.Pool.Token0, a.Pool.Token1,
		a.RecommendedAllocation,
		a.OptimalRange.Lower, a.OptimalRange.Upper,
		a.ExpectedDailyFees, a.NetAPY, a.RiskScore,
		colorize(a.Recommendation.String()+": "+a.Recommendation.Message(), col))
}

func (f *Formatter) MEV(ops []model.MEVOpportunity) string {
	if len(ops) == 0 {
		return colorize("no opportunities", ansiDim)
	}
	parts := make([]string, 0, len(ops))
	for _, op := range ops {
		parts = append(parts, fmt.Sprintf("%s $%.2f (conf %.2f, %d blk)", op.Type, op.ProfitAfterGas, op.ConfidenceScore, op.ExecutionWindow))
	}
	return strings.Join(parts, colorize("  ||  ", ansiDim))
}

func (f *Formatter) InvalidTokens(tokens []model.TokenData) string {
	if len(tokens) == 0 {
		return colorize("all token addresses valid", ansiGreen)
	}
	parts := make([]string, 0, len(tokens))
	for _, t := range tokens {
		parts = append(parts, fmt.Sprintf("%s(%s)", t.Symbol, t.ContractAddress))
	}
	return colorize("invalid: "+strings.Join(parts, ", "), ansiRed)
}
