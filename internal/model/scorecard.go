package model

// ScoreFactor names one scorecard sub-score.
type ScoreFactor string

// Scorecard factors.
const (
	FactorRevenue      ScoreFactor = "revenue"
	FactorDebtBurden   ScoreFactor = "debt_burden"
	FactorCashCushion  ScoreFactor = "cash_cushion"
	FactorNSF          ScoreFactor = "nsf"
	FactorNegativeDays ScoreFactor = "negative_days"
)

// SubScore is one weighted component of the overall health score.
type SubScore struct {
	Factor ScoreFactor
	Score  float64
	Weight float64
}

// Scorecard is a derived financial-health snapshot. Overall is the
// weighted sum of the sub-scores, truncated to an integer in [0,100].
// It is recomputed fully on every invocation and never mutated.
type Scorecard struct {
	SubScores []SubScore
	Overall   int
}
