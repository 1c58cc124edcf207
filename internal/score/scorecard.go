// Package score computes the weighted financial-health scorecard from a
// categorized transaction set. Factors are step functions over aggregate
// ratios; thresholds favor interpretability over smoothness.
package score

import (
	"math"

	"github.com/ledgerlens/ledgerlens/internal/model"
)

// Factor weights. They sum to 1.0.
const (
	weightRevenue      = 0.30
	weightDebtBurden   = 0.25
	weightCashCushion  = 0.20
	weightNSF          = 0.15
	weightNegativeDays = 0.10
)

// Banding tables per factor.
var (
	// Average monthly true revenue in dollars; higher is better.
	revenueBands = banding{
		bands: []band{{50000, 95}, {30000, 80}, {15000, 65}, {5000, 50}},
		floor: 30,
	}

	// Debt payments over true revenue; lower is better.
	debtBurdenBands = banding{
		bands: []band{{0.10, 90}, {0.20, 70}, {0.35, 45}},
		floor: 20,
	}

	// Months of expense runway held as average balance; higher is better.
	cashCushionBands = banding{
		bands: []band{{3, 95}, {2, 80}, {1, 60}, {0.5, 40}},
		floor: 15,
	}

	// Count of NSF/overdraft fee transactions; lower is better.
	nsfBands = banding{
		bands: []band{{0, 100}, {2, 70}, {5, 40}},
		floor: 15,
	}

	// Fraction of observed days with a negative running balance.
	negativeDayBands = banding{
		bands: []band{{0, 100}, {0.05, 80}, {0.15, 55}, {0.30, 30}},
		floor: 10,
	}
)

// Score computes the scorecard for a transaction set. An empty set is
// well defined: denominators are floored at 1 and every factor degrades
// to its worst band rather than erroring.
func Score(txns []model.Transaction) model.Scorecard {
	m := gatherMetrics(txns)

	subScores := []model.SubScore{
		{
			Factor: model.FactorRevenue,
			Score:  revenueBands.atLeast(m.avgMonthlyRevenue()),
			Weight: weightRevenue,
		},
		{
			Factor: model.FactorDebtBurden,
			Score:  debtBurdenBands.atMost(m.debtRatio()),
			Weight: weightDebtBurden,
		},
		{
			Factor: model.FactorCashCushion,
			Score:  cashCushionBands.atLeast(m.runwayMonths()),
			Weight: weightCashCushion,
		},
		{
			Factor: model.FactorNSF,
			Score:  nsfBands.atMost(float64(m.nsfCount)),
			Weight: weightNSF,
		},
		{
			Factor: model.FactorNegativeDays,
			Score:  negativeDayBands.atMost(m.negativeDayFraction()),
			Weight: weightNegativeDays,
		},
	}

	var overall float64
	for _, sub := range subScores {
		overall += sub.Score * sub.Weight
	}

	return model.Scorecard{
		SubScores: subScores,
		Overall:   clamp(int(overall), 0, 100),
	}
}

// metrics are the aggregates the banding tables consume.
type metrics struct {
	trueRevenue   float64
	debtPayments  float64
	totalExpenses float64
	balanceSum    float64
	balanceCount  int
	months        int
	nsfCount      int
	negativeDays  int
	totalDays     int
}

func gatherMetrics(txns []model.Transaction) metrics {
	var m metrics

	monthsSeen := make(map[string]struct{})
	lastBalanceByDay := make(map[string]float64)

	for _, txn := range txns {
		if txn.Category == model.CategoryRevenue && txn.Amount > 0 {
			m.trueRevenue += txn.Amount
		}
		if txn.Category.IsDebt() && txn.Amount < 0 {
			m.debtPayments += math.Abs(txn.Amount)
		}
		if txn.Amount < 0 {
			m.totalExpenses += math.Abs(txn.Amount)
		}
		if txn.Category == model.CategoryNSFFee {
			m.nsfCount++
		}

		m.balanceSum += txn.RunningBalance
		m.balanceCount++

		monthsSeen[txn.Date.Format("2006-01")] = struct{}{}
		lastBalanceByDay[txn.Date.Format("2006-01-02")] = txn.RunningBalance
	}

	m.months = len(monthsSeen)
	m.totalDays = len(lastBalanceByDay)
	for _, balance := range lastBalanceByDay {
		if balance < 0 {
			m.negativeDays++
		}
	}

	return m
}

func (m metrics) avgMonthlyRevenue() float64 {
	return m.trueRevenue / float64(max(m.months, 1))
}

func (m metrics) debtRatio() float64 {
	return m.debtPayments / math.Max(m.trueRevenue, 1)
}

func (m metrics) runwayMonths() float64 {
	avgBalance := m.balanceSum / float64(max(m.balanceCount, 1))
	monthlyExpenses := m.totalExpenses / float64(max(m.months, 1))
	return avgBalance / math.Max(monthlyExpenses, 1)
}

func (m metrics) negativeDayFraction() float64 {
	return float64(m.negativeDays) / float64(max(m.totalDays, 1))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
