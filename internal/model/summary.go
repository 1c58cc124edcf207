package model

import "time"

// MonthlySummary is one per-calendar-month rollup row.
type MonthlySummary struct {
	Month               string // YYYY-MM
	DepositCount        int
	DepositTotal        float64
	WithdrawalCount     int
	WithdrawalTotal     float64
	TrueRevenue         float64
	MCADebits           float64
	HoldbackPercent     float64
	StartingBalance     float64
	EndingBalance       float64
	AverageBalance      float64
	NegativeBalanceDays int
}

// StatementSummary is the statement-level record persisted after analysis.
type StatementSummary struct {
	ID                string
	Filename          string
	StatementMonth    string // YYYY-MM of the earliest transaction
	UploadedAt        time.Time
	TotalTransactions int
	TotalRevenue      float64
	TotalExpenses     float64
	NetCashFlow       float64
	HealthScore       int
}
