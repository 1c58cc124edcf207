// Package recurring detects recurring payment series and classifies
// debt-like obligations (MCA holdbacks, term loans) among them.
package recurring

import (
	"math"
	"sort"
	"strings"

	"github.com/ledgerlens/ledgerlens/internal/model"
)

// keyLength is the description-prefix length used as the grouping key.
// Unrelated merchants sharing a prefix collapse into one group; this is
// an accepted approximation, not a defect.
const keyLength = 15

// Frequency thresholds on the mean day-gap between occurrences.
const (
	dailyMaxGap  = 2.0
	weeklyMaxGap = 9.0
)

// Detect groups categorized transactions by description signature and
// returns every group with at least two occurrences, keyed
// alphabetically. Single-occurrence groups are excluded, never errored.
func Detect(txns []model.Transaction) []model.RecurringSeries {
	groups := make(map[string][]model.Transaction)
	for _, txn := range txns {
		key := GroupKey(txn.Description)
		if key == "" {
			continue
		}
		groups[key] = append(groups[key], txn)
	}

	keys := make([]string, 0, len(groups))
	for key, members := range groups {
		if len(members) < 2 {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	series := make([]model.RecurringSeries, 0, len(keys))
	for _, key := range keys {
		series = append(series, buildSeries(key, groups[key]))
	}
	return series
}

// GroupKey normalizes a description into its series signature: case
// folded, whitespace collapsed, truncated to a fixed prefix.
func GroupKey(description string) string {
	key := strings.Join(strings.Fields(strings.ToUpper(description)), " ")
	if len(key) > keyLength {
		key = key[:keyLength]
	}
	return strings.TrimSpace(key)
}

func buildSeries(key string, members []model.Transaction) model.RecurringSeries {
	sort.SliceStable(members, func(i, j int) bool {
		return members[i].Date.Before(members[j].Date)
	})

	meanGap := meanDayGap(members)
	frequency := classifyFrequency(meanGap)

	meanAmount := meanAbsAmount(members)
	estimated := meanAmount
	switch frequency {
	case model.FrequencyDaily:
		estimated = meanAmount * 22
	case model.FrequencyWeekly:
		estimated = meanAmount * 4
	}

	return model.RecurringSeries{
		Key:              key,
		Transactions:     members,
		Frequency:        frequency,
		EstimatedMonthly: estimated,
		DebtClass:        classifyDebt(members),
	}
}

func meanDayGap(members []model.Transaction) float64 {
	var total float64
	for i := 1; i < len(members); i++ {
		total += members[i].Date.Sub(members[i-1].Date).Hours() / 24
	}
	return total / float64(len(members)-1)
}

func classifyFrequency(meanGap float64) model.Frequency {
	switch {
	case meanGap <= dailyMaxGap:
		return model.FrequencyDaily
	case meanGap <= weeklyMaxGap:
		return model.FrequencyWeekly
	default:
		return model.FrequencyMonthly
	}
}

func meanAbsAmount(members []model.Transaction) float64 {
	var total float64
	for _, txn := range members {
		total += math.Abs(txn.Amount)
	}
	return total / float64(len(members))
}

// classifyDebt decides what obligation a series represents from its
// dominant category. Credit-dominant groups are recurring revenue, not
// debt.
func classifyDebt(members []model.Transaction) model.DebtClass {
	var mca, loan, debits int
	for _, txn := range members {
		switch txn.Category {
		case model.CategoryMCADebt:
			mca++
		case model.CategoryLoanPayment, model.CategoryCreditCard:
			loan++
		}
		if txn.Amount < 0 {
			debits++
		}
	}

	switch {
	case mca > 0 && mca >= loan:
		return model.DebtClassMCA
	case loan > 0:
		return model.DebtClassTermLoan
	case debits*2 > len(members):
		return model.DebtClassOtherRecurring
	default:
		return model.DebtClassNone
	}
}
