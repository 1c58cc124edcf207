// Package report rolls categorized transactions into per-month summaries
// and the statement-level summary record.
package report

import (
	"math"
	"sort"

	"github.com/ledgerlens/ledgerlens/internal/model"
)

// Monthly aggregates transactions into one row per calendar month
// present in the data, sorted ascending by YYYY-MM key. Balance figures
// use each month's own first and last chronological observations.
func Monthly(txns []model.Transaction) []model.MonthlySummary {
	byMonth := make(map[string][]model.Transaction)
	for _, txn := range txns {
		key := txn.Date.Format("2006-01")
		byMonth[key] = append(byMonth[key], txn)
	}

	keys := make([]string, 0, len(byMonth))
	for key := range byMonth {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	rows := make([]model.MonthlySummary, 0, len(keys))
	for _, key := range keys {
		rows = append(rows, summarizeMonth(key, byMonth[key]))
	}
	return rows
}

func summarizeMonth(key string, members []model.Transaction) model.MonthlySummary {
	sort.SliceStable(members, func(i, j int) bool {
		return members[i].Date.Before(members[j].Date)
	})

	row := model.MonthlySummary{
		Month:           key,
		StartingBalance: members[0].RunningBalance,
		EndingBalance:   members[len(members)-1].RunningBalance,
	}

	var balanceSum float64
	lastBalanceByDay := make(map[string]float64)

	for _, txn := range members {
		if txn.Amount > 0 {
			row.DepositCount++
			row.DepositTotal += txn.Amount
		} else {
			row.WithdrawalCount++
			row.WithdrawalTotal += math.Abs(txn.Amount)
		}

		if txn.Category == model.CategoryRevenue && txn.Amount > 0 {
			row.TrueRevenue += txn.Amount
		}
		if txn.Category == model.CategoryMCADebt && txn.Amount < 0 {
			row.MCADebits += math.Abs(txn.Amount)
		}

		balanceSum += txn.RunningBalance
		lastBalanceByDay[txn.Date.Format("2006-01-02")] = txn.RunningBalance
	}

	row.AverageBalance = balanceSum / float64(len(members))
	row.HoldbackPercent = row.MCADebits / math.Max(row.TrueRevenue, 1) * 100

	for _, balance := range lastBalanceByDay {
		if balance < 0 {
			row.NegativeBalanceDays++
		}
	}

	return row
}

// Summarize builds the statement-level summary record persisted after an
// analysis run. Well defined for an empty set.
func Summarize(txns []model.Transaction, healthScore int) model.StatementSummary {
	summary := model.StatementSummary{
		TotalTransactions: len(txns),
		HealthScore:       healthScore,
	}

	for _, txn := range txns {
		if txn.Amount > 0 {
			summary.TotalRevenue += txn.Amount
		} else {
			summary.TotalExpenses += math.Abs(txn.Amount)
		}
		summary.NetCashFlow += txn.Amount
	}

	if len(txns) > 0 {
		earliest := txns[0].Date
		for _, txn := range txns[1:] {
			if txn.Date.Before(earliest) {
				earliest = txn.Date
			}
		}
		summary.StatementMonth = earliest.Format("2006-01")
	}

	return summary
}
