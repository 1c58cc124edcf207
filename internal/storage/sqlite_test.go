package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerlens/ledgerlens/internal/common"
	"github.com/ledgerlens/ledgerlens/internal/model"
)

func setupTestDB(t *testing.T) *SQLiteStorage {
	t.Helper()

	store, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func TestNewSQLiteStorage_EmptyPath(t *testing.T) {
	_, err := NewSQLiteStorage("")
	assert.Error(t, err)
}

func TestMigrate_Idempotent(t *testing.T) {
	store := setupTestDB(t)
	// A second run must be a no-op.
	require.NoError(t, store.Migrate(context.Background()))

	var version int
	err := store.db.QueryRow(
		`SELECT COALESCE(MAX(version), 0) FROM schema_versions`).Scan(&version)
	require.NoError(t, err)
	assert.Equal(t, ExpectedSchemaVersion, version)
}

func TestLearnedPatterns_RoundTrip(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()

	entries, err := store.GetLearnedPatterns(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)

	err = store.SaveLearnedPattern(ctx, &model.PatternEntry{
		Pattern:    "ACME CORP",
		Category:   model.CategoryRent,
		Confidence: 0.80,
		MatchType:  model.MatchContains,
		TimesUsed:  1,
	})
	require.NoError(t, err)

	entries, err = store.GetLearnedPatterns(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "ACME CORP", entries[0].Pattern)
	assert.Equal(t, model.CategoryRent, entries[0].Category)
	assert.InDelta(t, 0.80, entries[0].Confidence, 0.001)
	assert.Equal(t, 1, entries[0].TimesUsed)
	assert.True(t, entries[0].Learned)
}

func TestSaveLearnedPattern_UpsertsOnConflict(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()

	first := model.PatternEntry{
		Pattern:    "ACME CORP",
		Category:   model.CategoryRent,
		Confidence: 0.80,
		TimesUsed:  1,
	}
	require.NoError(t, store.SaveLearnedPattern(ctx, &first))

	second := first
	second.Category = model.CategoryUtilities
	second.TimesUsed = 2
	require.NoError(t, store.SaveLearnedPattern(ctx, &second))

	entries, err := store.GetLearnedPatterns(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, model.CategoryUtilities, entries[0].Category)
	assert.Equal(t, 2, entries[0].TimesUsed)
}

func TestSaveLearnedPattern_Invalid(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()

	err := store.SaveLearnedPattern(ctx, &model.PatternEntry{
		Pattern:  "",
		Category: model.CategoryRent,
	})
	assert.ErrorIs(t, err, common.ErrInvalidPattern)

	err = store.SaveLearnedPattern(ctx, &model.PatternEntry{
		Pattern:  "ACME CORP",
		Category: model.Category("BOGUS"),
	})
	assert.ErrorIs(t, err, common.ErrInvalidPattern)
}

func TestDeleteLearnedPattern(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, store.SaveLearnedPattern(ctx, &model.PatternEntry{
		Pattern:    "ACME CORP",
		Category:   model.CategoryRent,
		Confidence: 0.80,
		TimesUsed:  1,
	}))

	require.NoError(t, store.DeleteLearnedPattern(ctx, "ACME CORP"))
	assert.ErrorIs(t, store.DeleteLearnedPattern(ctx, "ACME CORP"), common.ErrNotFound)
}

func TestDeleteLearnedPattern_ExactStoredText(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()

	// Stored text is authoritative even when it is not in derived-key
	// form (lowercase, more than two tokens).
	require.NoError(t, store.SaveLearnedPattern(ctx, &model.PatternEntry{
		Pattern:    "daily ach fundbox",
		Category:   model.CategoryMCADebt,
		Confidence: 0.80,
		TimesUsed:  1,
	}))

	assert.ErrorIs(t, store.DeleteLearnedPattern(ctx, "DAILY ACH"), common.ErrNotFound)
	require.NoError(t, store.DeleteLearnedPattern(ctx, "daily ach fundbox"))
}

func sampleStatement() (*model.StatementSummary, []model.Transaction) {
	summary := &model.StatementSummary{
		Filename:          "january.txt",
		StatementMonth:    "2026-01",
		TotalTransactions: 2,
		TotalRevenue:      15000,
		TotalExpenses:     450,
		NetCashFlow:       14550,
		HealthScore:       72,
	}
	txns := []model.Transaction{
		{
			Date:           time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
			Description:    "STRIPE DEPOSIT",
			Amount:         15000,
			RunningBalance: 15000,
			Category:       model.CategoryRevenue,
			Confidence:     0.90,
		},
		{
			Date:           time.Date(2026, 1, 6, 0, 0, 0, 0, time.UTC),
			Description:    "DAILY ACH FUNDBOX",
			Amount:         -450,
			RunningBalance: 14550,
			Category:       model.CategoryMCADebt,
			Confidence:     0.95,
		},
	}
	return summary, txns
}

func TestSaveStatement_AllowsIdenticalRows(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()

	// Two equal fees on one day are a legitimate statement; both rows
	// must persist even though their content hashes collide.
	fee := model.Transaction{
		Date:           time.Date(2026, 1, 6, 0, 0, 0, 0, time.UTC),
		Description:    "NSF RETURNED ITEM FEE",
		Amount:         -35,
		RunningBalance: -35,
		Category:       model.CategoryNSFFee,
		Confidence:     0.95,
	}
	second := fee
	second.RunningBalance = -70

	summary := &model.StatementSummary{
		Filename:          "january.txt",
		StatementMonth:    "2026-01",
		TotalTransactions: 2,
	}
	txns := []model.Transaction{fee, second}
	require.NoError(t, store.SaveStatement(ctx, summary, txns))

	stored, err := store.GetStatementTransactions(ctx, summary.ID)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.NotEqual(t, stored[0].ID, stored[1].ID)
}

func TestSaveStatement_DuplicateStatementID(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()

	summary, txns := sampleStatement()
	require.NoError(t, store.SaveStatement(ctx, summary, txns))

	dup, dupTxns := sampleStatement()
	dup.ID = summary.ID
	assert.ErrorIs(t, store.SaveStatement(ctx, dup, dupTxns), common.ErrDuplicateEntry)
}

func TestSaveStatement_RoundTrip(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()

	summary, txns := sampleStatement()
	require.NoError(t, store.SaveStatement(ctx, summary, txns))
	assert.NotEmpty(t, summary.ID, "missing ID should be filled in")
	assert.False(t, summary.UploadedAt.IsZero())

	stored, err := store.GetStatementTransactions(ctx, summary.ID)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, "STRIPE DEPOSIT", stored[0].Description)
	assert.Equal(t, model.CategoryRevenue, stored[0].Category)
	assert.InDelta(t, 15000, stored[0].Amount, 0.001)
	assert.Equal(t, "DAILY ACH FUNDBOX", stored[1].Description)
}

func TestGetRecentStatements_MostRecentFirst(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()

	older, olderTxns := sampleStatement()
	older.UploadedAt = time.Now().Add(-time.Hour)
	require.NoError(t, store.SaveStatement(ctx, older, olderTxns))

	newer, newerTxns := sampleStatement()
	require.NoError(t, store.SaveStatement(ctx, newer, newerTxns))

	summaries, err := store.GetRecentStatements(ctx, 10)
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, newer.ID, summaries[0].ID)
	assert.Equal(t, older.ID, summaries[1].ID)
}

func TestGetRecentStatements_LimitApplied(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		summary, txns := sampleStatement()
		summary.UploadedAt = time.Now().Add(time.Duration(i) * time.Minute)
		require.NoError(t, store.SaveStatement(ctx, summary, txns))
	}

	summaries, err := store.GetRecentStatements(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, summaries, 2)
}

func TestUpdateTransactionCategory(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()

	summary, txns := sampleStatement()
	require.NoError(t, store.SaveStatement(ctx, summary, txns))

	require.NoError(t, store.UpdateTransactionCategory(ctx, txns[1].ID, model.CategoryLoanPayment))

	stored, err := store.GetStatementTransactions(ctx, summary.ID)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, model.CategoryLoanPayment, stored[1].Category)
	assert.InDelta(t, 1.0, stored[1].Confidence, 0.001)
	assert.True(t, stored[1].UserCorrected)
}

func TestUpdateTransactionCategory_NotFound(t *testing.T) {
	store := setupTestDB(t)

	err := store.UpdateTransactionCategory(context.Background(), "missing", model.CategoryRent)
	assert.ErrorIs(t, err, common.ErrNotFound)
}
