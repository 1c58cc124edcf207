package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerlens/ledgerlens/internal/common"
	"github.com/ledgerlens/ledgerlens/internal/model"
)

func TestRegistry_Lookup_Defaults(t *testing.T) {
	reg := New()

	tests := []struct {
		name         string
		description  string
		wantCategory model.Category
		wantFound    bool
	}{
		{
			name:         "mca lender",
			description:  "DAILY ACH FUNDBOX",
			wantCategory: model.CategoryMCADebt,
			wantFound:    true,
		},
		{
			name:         "payroll provider",
			description:  "GUSTO PAYROLL 8842",
			wantCategory: model.CategoryPayroll,
			wantFound:    true,
		},
		{
			name:         "nsf fee",
			description:  "NSF RETURNED ITEM FEE",
			wantCategory: model.CategoryNSFFee,
			wantFound:    true,
		},
		{
			name:        "no match",
			description: "XYZZY WIDGETS",
			wantFound:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			match, found := reg.Lookup(tt.description)
			require.Equal(t, tt.wantFound, found)
			if found {
				assert.Equal(t, tt.wantCategory, match.Category)
				assert.False(t, match.Learned)
			}
		})
	}
}

func TestRegistry_Lookup_HighestConfidenceWinsWithinTier(t *testing.T) {
	reg := New()

	// "STRIPE DEPOSIT" matches both "stripe" (0.90) and "deposit" (0.70).
	match, found := reg.Lookup("STRIPE DEPOSIT")
	require.True(t, found)
	assert.Equal(t, model.CategoryRevenue, match.Category)
	assert.InDelta(t, 0.90, match.Confidence, 0.001)
	assert.Equal(t, "stripe", match.Pattern)
}

func TestRegistry_LearnedPrecedesDefaults(t *testing.T) {
	reg := New()

	// Default tier categorizes this as MCA debt.
	match, found := reg.Lookup("DAILY ACH FUNDBOX")
	require.True(t, found)
	require.Equal(t, model.CategoryMCADebt, match.Category)

	// Teaching overrides it on the very next lookup.
	patternText, err := reg.Learn("DAILY ACH FUNDBOX", model.CategoryLoanPayment)
	require.NoError(t, err)
	assert.Equal(t, "DAILY ACH", patternText)

	match, found = reg.Lookup("DAILY ACH FUNDBOX")
	require.True(t, found)
	assert.Equal(t, model.CategoryLoanPayment, match.Category)
	assert.True(t, match.Learned)
	assert.InDelta(t, LearnedConfidence, match.Confidence, 0.001)
}

func TestRegistry_Learn(t *testing.T) {
	tests := []struct {
		name        string
		description string
		category    model.Category
		wantPattern string
		wantErr     error
	}{
		{
			name:        "two token key",
			description: "ACME CORP PROPERTY 9921",
			category:    model.CategoryRent,
			wantPattern: "ACME CORP",
		},
		{
			name:        "single token key",
			description: "fundbox",
			category:    model.CategoryMCADebt,
			wantPattern: "FUNDBOX",
		},
		{
			name:        "empty description rejected",
			description: "   ",
			category:    model.CategoryRent,
			wantErr:     common.ErrInvalidPattern,
		},
		{
			name:        "unknown category rejected",
			description: "ACME CORP",
			category:    model.Category("BOGUS"),
			wantErr:     common.ErrInvalidPattern,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := New()
			patternText, err := reg.Learn(tt.description, tt.category)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, reg.Learned())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantPattern, patternText)
		})
	}
}

func TestRegistry_Relearn_IncrementsInsteadOfDuplicating(t *testing.T) {
	reg := New()

	_, err := reg.Learn("ACME CORP PROPERTY 9921", model.CategoryRent)
	require.NoError(t, err)
	_, err = reg.Learn("ACME CORP SUITE 12", model.CategoryUtilities)
	require.NoError(t, err)

	learned := reg.Learned()
	require.Len(t, learned, 1)
	assert.Equal(t, "ACME CORP", learned[0].Pattern)
	assert.Equal(t, model.CategoryUtilities, learned[0].Category)
	assert.Equal(t, 2, learned[0].TimesUsed)
}

func TestRegistry_Forget(t *testing.T) {
	reg := New()

	_, err := reg.Learn("ACME CORP", model.CategoryRent)
	require.NoError(t, err)

	assert.True(t, reg.Forget("ACME CORP"))
	assert.False(t, reg.Forget("ACME CORP"))

	_, found := reg.Lookup("ACME CORP PROPERTY")
	assert.False(t, found)
}

func TestRegistry_LookupIncrementsUseCount(t *testing.T) {
	reg := New()

	_, err := reg.Learn("ACME CORP", model.CategoryRent)
	require.NoError(t, err)

	_, found := reg.Lookup("ACME CORP PROPERTY 9921")
	require.True(t, found)
	_, found = reg.Lookup("ACME CORP PROPERTY 9921")
	require.True(t, found)

	learned := reg.Learned()
	require.Len(t, learned, 1)
	// One use from Learn, two from lookups.
	assert.Equal(t, 3, learned[0].TimesUsed)
}

func TestRegistry_ExactMatchType(t *testing.T) {
	reg := New()
	reg.Restore([]model.PatternEntry{
		{
			Pattern:    "stripe",
			Category:   model.CategoryTransferIn,
			Confidence: 0.99,
			MatchType:  model.MatchExact,
		},
	})

	// Exact learned pattern beats the default "stripe" contains rule
	// when the description equals the pattern text.
	match, found := reg.Lookup("STRIPE")
	require.True(t, found)
	assert.Equal(t, model.CategoryTransferIn, match.Category)

	// A longer description does not exact-match, so defaults apply.
	match, found = reg.Lookup("STRIPE DEPOSIT")
	require.True(t, found)
	assert.Equal(t, model.CategoryRevenue, match.Category)
}

func TestDeriveKey(t *testing.T) {
	assert.Equal(t, "ACME CORP", DeriveKey("acme corp property 9921"))
	assert.Equal(t, "FUNDBOX", DeriveKey("fundbox"))
	assert.Equal(t, "", DeriveKey("   "))
}
