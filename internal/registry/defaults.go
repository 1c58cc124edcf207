package registry

import "github.com/ledgerlens/ledgerlens/internal/model"

// defaultRule is one seeded keyword-to-category rule. Default rules are
// immutable and consulted in declaration order after the learned tier.
type defaultRule struct {
	pattern    string
	category   model.Category
	confidence float64
}

// defaultRules seeds the registry. Lender and processor names carry a
// higher confidence than generic banking words.
var defaultRules = []defaultRule{
	// MCA lenders: daily ACH debits from alternative financing.
	{"daily ach", model.CategoryMCADebt, 0.95},
	{"merchant cash", model.CategoryMCADebt, 0.95},
	{"fundbox", model.CategoryMCADebt, 0.95},
	{"kabbage", model.CategoryMCADebt, 0.95},
	{"ondeck", model.CategoryMCADebt, 0.95},
	{"bluevine", model.CategoryMCADebt, 0.95},
	{"credibly", model.CategoryMCADebt, 0.95},
	{"rapid finance", model.CategoryMCADebt, 0.95},
	{"forward financing", model.CategoryMCADebt, 0.95},
	{"clearco", model.CategoryMCADebt, 0.95},
	{"shopify capital", model.CategoryMCADebt, 0.95},

	{"loan pmt", model.CategoryLoanPayment, 0.90},
	{"loan payment", model.CategoryLoanPayment, 0.90},
	{"sba loan", model.CategoryLoanPayment, 0.95},
	{"term loan", model.CategoryLoanPayment, 0.95},
	{"lending club", model.CategoryLoanPayment, 0.95},
	{"prosper", model.CategoryLoanPayment, 0.85},
	{"funding circle", model.CategoryLoanPayment, 0.95},

	{"rent", model.CategoryRent, 0.80},
	{"lease", model.CategoryRent, 0.80},
	{"property mgmt", model.CategoryRent, 0.90},
	{"landlord", model.CategoryRent, 0.90},

	{"payroll", model.CategoryPayroll, 0.90},
	{"gusto", model.CategoryPayroll, 0.95},
	{"adp", model.CategoryPayroll, 0.90},
	{"paychex", model.CategoryPayroll, 0.95},
	{"quickbooks payroll", model.CategoryPayroll, 0.95},
	{"square payroll", model.CategoryPayroll, 0.95},

	{"electric", model.CategoryUtilities, 0.85},
	{"gas bill", model.CategoryUtilities, 0.85},
	{"water bill", model.CategoryUtilities, 0.85},
	{"utility", model.CategoryUtilities, 0.85},
	{"pge", model.CategoryUtilities, 0.85},
	{"edison", model.CategoryUtilities, 0.85},
	{"comcast", model.CategoryUtilities, 0.90},
	{"att", model.CategoryUtilities, 0.70},
	{"verizon", model.CategoryUtilities, 0.90},

	{"insurance", model.CategoryInsurance, 0.90},
	{"geico", model.CategoryInsurance, 0.95},
	{"allstate", model.CategoryInsurance, 0.95},
	{"progressive", model.CategoryInsurance, 0.90},
	{"state farm", model.CategoryInsurance, 0.95},

	{"payment received", model.CategoryRevenue, 0.90},
	{"stripe", model.CategoryRevenue, 0.90},
	{"square", model.CategoryRevenue, 0.85},
	{"paypal", model.CategoryRevenue, 0.85},
	{"shopify", model.CategoryRevenue, 0.85},
	{"amazon payout", model.CategoryRevenue, 0.95},
	{"pos deposit", model.CategoryRevenue, 0.95},
	{"deposit", model.CategoryRevenue, 0.70},

	{"transfer from", model.CategoryTransferIn, 0.90},
	{"xfer from", model.CategoryTransferIn, 0.90},
	{"mobile deposit", model.CategoryTransferIn, 0.85},

	{"transfer to", model.CategoryTransferOut, 0.90},
	{"xfer to", model.CategoryTransferOut, 0.90},
	{"wire out", model.CategoryTransferOut, 0.90},

	{"irs", model.CategoryTax, 0.90},
	{"tax payment", model.CategoryTax, 0.95},
	{"estimated tax", model.CategoryTax, 0.95},
	{"state tax", model.CategoryTax, 0.95},
	{"franchise tax", model.CategoryTax, 0.95},

	{"credit card", model.CategoryCreditCard, 0.85},
	{"amex", model.CategoryCreditCard, 0.90},
	{"chase card", model.CategoryCreditCard, 0.90},
	{"visa payment", model.CategoryCreditCard, 0.90},
	{"mastercard", model.CategoryCreditCard, 0.90},

	{"nsf", model.CategoryNSFFee, 0.95},
	{"overdraft", model.CategoryNSFFee, 0.95},
	{"insufficient", model.CategoryNSFFee, 0.95},
	{"returned item", model.CategoryNSFFee, 0.90},
}
