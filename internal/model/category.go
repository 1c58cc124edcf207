// Package model defines the core data structures for the ledgerlens application.
package model

// Category is the closed set of transaction categories.
type Category string

// Transaction categories.
const (
	CategoryMCADebt      Category = "MCA_DEBT"
	CategoryLoanPayment  Category = "LOAN_PAYMENT"
	CategoryRent         Category = "RENT"
	CategoryPayroll      Category = "PAYROLL"
	CategoryUtilities    Category = "UTILITIES"
	CategoryInsurance    Category = "INSURANCE"
	CategoryRevenue      Category = "REVENUE"
	CategoryTransferIn   Category = "TRANSFER_IN"
	CategoryTransferOut  Category = "TRANSFER_OUT"
	CategoryTax          Category = "TAX"
	CategoryCreditCard   Category = "CREDIT_CARD"
	CategoryNSFFee       Category = "NSF_FEE"
	CategoryOtherIncome  Category = "OTHER_INCOME"
	CategoryOtherExpense Category = "OTHER_EXPENSE"
)

// AllCategories lists every valid category in declaration order.
func AllCategories() []Category {
	return []Category{
		CategoryMCADebt,
		CategoryLoanPayment,
		CategoryRent,
		CategoryPayroll,
		CategoryUtilities,
		CategoryInsurance,
		CategoryRevenue,
		CategoryTransferIn,
		CategoryTransferOut,
		CategoryTax,
		CategoryCreditCard,
		CategoryNSFFee,
		CategoryOtherIncome,
		CategoryOtherExpense,
	}
}

// Valid reports whether c is a member of the closed category set.
func (c Category) Valid() bool {
	for _, known := range AllCategories() {
		if c == known {
			return true
		}
	}
	return false
}

// IsDebt reports whether the category represents a debt obligation.
// Used by the scorecard's debt-burden factor and the recurring detector.
func (c Category) IsDebt() bool {
	return c == CategoryMCADebt || c == CategoryLoanPayment || c == CategoryCreditCard
}
