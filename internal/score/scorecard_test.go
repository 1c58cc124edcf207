package score

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerlens/ledgerlens/internal/model"
)

func scoreTxn(date time.Time, amount, balance float64, category model.Category) model.Transaction {
	return model.Transaction{
		Date:           date,
		Description:    "TEST",
		Amount:         amount,
		RunningBalance: balance,
		Category:       category,
	}
}

func jan(d int) time.Time {
	return time.Date(2026, 1, d, 0, 0, 0, 0, time.UTC)
}

func TestScore_EmptySetIsWellDefined(t *testing.T) {
	card := Score(nil)

	assert.GreaterOrEqual(t, card.Overall, 0)
	assert.LessOrEqual(t, card.Overall, 100)
	require.Len(t, card.SubScores, 5)

	var totalWeight float64
	for _, sub := range card.SubScores {
		totalWeight += sub.Weight
		assert.GreaterOrEqual(t, sub.Score, 0.0)
		assert.LessOrEqual(t, sub.Score, 100.0)
	}
	assert.InDelta(t, 1.0, totalWeight, 0.0001)
}

func TestScore_OverallBounded(t *testing.T) {
	txns := []model.Transaction{
		scoreTxn(jan(1), 60000, 60000, model.CategoryRevenue),
		scoreTxn(jan(2), -500, 59500, model.CategoryRent),
	}

	card := Score(txns)
	assert.GreaterOrEqual(t, card.Overall, 0)
	assert.LessOrEqual(t, card.Overall, 100)
}

func TestScore_DebtBurdenMonotonic(t *testing.T) {
	// Increasing debt payments with revenue held fixed must never
	// increase the debt-burden sub-score.
	debtSub := func(debt float64) float64 {
		txns := []model.Transaction{
			scoreTxn(jan(1), 10000, 10000, model.CategoryRevenue),
			scoreTxn(jan(2), -debt, 10000-debt, model.CategoryMCADebt),
		}
		card := Score(txns)
		for _, sub := range card.SubScores {
			if sub.Factor == model.FactorDebtBurden {
				return sub.Score
			}
		}
		t.Fatal("debt burden factor missing")
		return 0
	}

	previous := debtSub(0)
	for _, debt := range []float64{500, 1500, 2500, 4000, 9000} {
		current := debtSub(debt)
		assert.LessOrEqual(t, current, previous, "debt %v", debt)
		previous = current
	}
}

func TestScore_NSFCountLowersScore(t *testing.T) {
	base := []model.Transaction{
		scoreTxn(jan(1), 20000, 20000, model.CategoryRevenue),
	}

	nsfSub := func(count int) float64 {
		txns := append([]model.Transaction{}, base...)
		for i := 0; i < count; i++ {
			txns = append(txns, scoreTxn(jan(2+i), -35, 20000, model.CategoryNSFFee))
		}
		card := Score(txns)
		for _, sub := range card.SubScores {
			if sub.Factor == model.FactorNSF {
				return sub.Score
			}
		}
		return -1
	}

	assert.Equal(t, 100.0, nsfSub(0))
	assert.Equal(t, 70.0, nsfSub(2))
	assert.Equal(t, 40.0, nsfSub(5))
	assert.Equal(t, 15.0, nsfSub(6))
}

func TestScore_RevenueBands(t *testing.T) {
	revenueSub := func(monthly float64) float64 {
		txns := []model.Transaction{
			scoreTxn(jan(1), monthly, monthly, model.CategoryRevenue),
		}
		card := Score(txns)
		for _, sub := range card.SubScores {
			if sub.Factor == model.FactorRevenue {
				return sub.Score
			}
		}
		return -1
	}

	assert.Equal(t, 95.0, revenueSub(60000))
	assert.Equal(t, 80.0, revenueSub(35000))
	assert.Equal(t, 65.0, revenueSub(20000))
	assert.Equal(t, 50.0, revenueSub(8000))
	assert.Equal(t, 30.0, revenueSub(1000))
}

func TestScore_NegativeBalanceDays(t *testing.T) {
	// Every observed day ends negative.
	txns := []model.Transaction{
		scoreTxn(jan(1), -100, -100, model.CategoryOtherExpense),
		scoreTxn(jan(2), -100, -200, model.CategoryOtherExpense),
	}

	card := Score(txns)
	for _, sub := range card.SubScores {
		if sub.Factor == model.FactorNegativeDays {
			assert.Equal(t, 10.0, sub.Score)
		}
	}
}

func TestBanding_FirstMatchWins(t *testing.T) {
	b := banding{
		bands: []band{{10, 90}, {20, 70}},
		floor: 20,
	}

	assert.Equal(t, 90.0, b.atMost(5))
	assert.Equal(t, 90.0, b.atMost(10))
	assert.Equal(t, 70.0, b.atMost(15))
	assert.Equal(t, 20.0, b.atMost(25))

	hi := banding{
		bands: []band{{50, 95}, {30, 80}},
		floor: 30,
	}
	assert.Equal(t, 95.0, hi.atLeast(60))
	assert.Equal(t, 95.0, hi.atLeast(50))
	assert.Equal(t, 80.0, hi.atLeast(40))
	assert.Equal(t, 30.0, hi.atLeast(10))
}
