package model

// Frequency is the inferred cadence of a recurring series.
type Frequency string

// Frequency constants.
const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

// DebtClass classifies what kind of obligation a recurring series represents.
type DebtClass string

// Debt class constants.
const (
	DebtClassMCA            DebtClass = "mca"
	DebtClassTermLoan       DebtClass = "term_loan"
	DebtClassOtherRecurring DebtClass = "other_recurring"
	DebtClassNone           DebtClass = "none"
)

// RecurringSeries is a group of transactions sharing a description
// signature and a regular interval. Requires at least two observations;
// single-occurrence groups are never emitted.
type RecurringSeries struct {
	Key              string
	Transactions     []Transaction
	Frequency        Frequency
	EstimatedMonthly float64
	DebtClass        DebtClass
}
