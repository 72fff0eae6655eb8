package model

// Recommendation investment tier derived from net APY
type Recommendation string

const (
	RecommendationStrongBuy Recommendation = "STRONG_BUY"
	RecommendationBuy       Recommendation = "BUY"
	RecommendationHold      Recommendation = "HOLD"
	RecommendationAvoid     Recommendation = "AVOID"
)

func (r Recommendation) String() string { return string(r) }

// Message human readable advice for the tier
func (r Recommendation) Message() string {
	switch r {
	case RecommendationStrongBuy:
		return "Excellent yield opportunity with manageable risk"
	case RecommendationBuy:
		return "Good yield opportunity, monitor impermanent loss"
	case RecommendationHold:
		return "Moderate opportunity, consider alternatives"
	default:
		return "Poor risk-adjusted returns"
	}
}
