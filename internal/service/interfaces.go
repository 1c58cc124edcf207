// Package service defines the interfaces for the persistence layer.
package service

import (
	"context"

	"github.com/ledgerlens/ledgerlens/internal/model"
)

// Storage defines the contract for the record store the core reads
// learned patterns from and writes analysis results to.
type Storage interface {
	// Learned pattern operations
	GetLearnedPatterns(ctx context.Context) ([]model.PatternEntry, error)
	SaveLearnedPattern(ctx context.Context, entry *model.PatternEntry) error
	DeleteLearnedPattern(ctx context.Context, patternText string) error

	// Statement operations
	SaveStatement(ctx context.Context, summary *model.StatementSummary, txns []model.Transaction) error
	GetRecentStatements(ctx context.Context, limit int) ([]model.StatementSummary, error)
	GetStatementTransactions(ctx context.Context, statementID string) ([]model.Transaction, error)
	UpdateTransactionCategory(ctx context.Context, transactionID string, category model.Category) error

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}
