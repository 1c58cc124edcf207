package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"

	"github.com/ledgerlens/ledgerlens/internal/common"
	"github.com/ledgerlens/ledgerlens/internal/model"
)

// SaveStatement persists a statement summary with its finalized
// transaction records in one database transaction. A missing ID is
// filled in with a fresh UUID.
func (s *SQLiteStorage) SaveStatement(ctx context.Context, summary *model.StatementSummary, txns []model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if summary == nil {
		return fmt.Errorf("statement summary cannot be nil")
	}

	if summary.ID == "" {
		summary.ID = uuid.NewString()
	}
	if summary.UploadedAt.IsZero() {
		summary.UploadedAt = time.Now()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO statements (
			id, filename, statement_month, uploaded_at,
			total_transactions, total_revenue, total_expenses, net_cash_flow, health_score
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		summary.ID, summary.Filename, summary.StatementMonth, summary.UploadedAt,
		summary.TotalTransactions, summary.TotalRevenue, summary.TotalExpenses,
		summary.NetCashFlow, summary.HealthScore,
	); err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey {
			return fmt.Errorf("statement %s: %w", summary.ID, common.ErrDuplicateEntry)
		}
		return fmt.Errorf("failed to save statement: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO transactions (
			id, statement_id, date, description, amount,
			running_balance, category, confidence, user_corrected, hash
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare transaction insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i := range txns {
		// Row IDs are UUIDs: legitimately identical lines (two equal
		// fees on one day) share a content hash but must both persist.
		if txns[i].ID == "" {
			txns[i].ID = uuid.NewString()
		}
		if _, err := stmt.ExecContext(ctx,
			txns[i].ID, summary.ID, txns[i].Date, txns[i].Description, txns[i].Amount,
			txns[i].RunningBalance, txns[i].Category, txns[i].Confidence, txns[i].UserCorrected,
			txns[i].GenerateHash(),
		); err != nil {
			return fmt.Errorf("failed to save transaction %q: %w", txns[i].Description, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit statement: %w", err)
	}

	return nil
}

// GetRecentStatements returns statement summaries, most recent first.
func (s *SQLiteStorage) GetRecentStatements(ctx context.Context, limit int) ([]model.StatementSummary, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, filename, statement_month, uploaded_at,
			total_transactions, total_revenue, total_expenses, net_cash_flow, health_score
		FROM statements
		ORDER BY uploaded_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get statements: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var summaries []model.StatementSummary
	for rows.Next() {
		var summary model.StatementSummary
		if err := rows.Scan(
			&summary.ID, &summary.Filename, &summary.StatementMonth, &summary.UploadedAt,
			&summary.TotalTransactions, &summary.TotalRevenue, &summary.TotalExpenses,
			&summary.NetCashFlow, &summary.HealthScore,
		); err != nil {
			return nil, fmt.Errorf("failed to scan statement: %w", err)
		}
		summaries = append(summaries, summary)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating statements: %w", err)
	}

	return summaries, nil
}

// GetStatementTransactions returns a statement's transactions in
// chronological order.
func (s *SQLiteStorage) GetStatementTransactions(ctx context.Context, statementID string) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, date, description, amount, running_balance, category, confidence, user_corrected
		FROM transactions
		WHERE statement_id = ?
		ORDER BY date ASC, created_at ASC
	`, statementID)
	if err != nil {
		return nil, fmt.Errorf("failed to get statement transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var txns []model.Transaction
	for rows.Next() {
		var txn model.Transaction
		if err := rows.Scan(
			&txn.ID, &txn.Date, &txn.Description, &txn.Amount,
			&txn.RunningBalance, &txn.Category, &txn.Confidence, &txn.UserCorrected,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txns = append(txns, txn)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	return txns, nil
}

// UpdateTransactionCategory applies a user correction to a stored
// transaction. The corrected category is authoritative and is never
// re-categorized automatically.
func (s *SQLiteStorage) UpdateTransactionCategory(ctx context.Context, transactionID string, category model.Category) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if !category.Valid() {
		return fmt.Errorf("unknown category %q", category)
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE transactions
		SET category = ?, confidence = 1.0, user_corrected = 1
		WHERE id = ?
	`, category, transactionID)
	if err != nil {
		return fmt.Errorf("failed to update transaction category: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("transaction %q: %w", transactionID, common.ErrNotFound)
	}

	return nil
}
