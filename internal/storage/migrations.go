package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version the application
// expects. Failing to reach it is fatal.
const ExpectedSchemaVersion = 3

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial schema",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS learned_patterns (
					pattern TEXT PRIMARY KEY,
					category TEXT NOT NULL,
					confidence REAL NOT NULL DEFAULT 0.8,
					match_type TEXT NOT NULL DEFAULT 'contains',
					times_used INTEGER NOT NULL DEFAULT 1,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,

				`CREATE TABLE IF NOT EXISTS statements (
					id TEXT PRIMARY KEY,
					filename TEXT NOT NULL,
					statement_month TEXT,
					uploaded_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					total_transactions INTEGER DEFAULT 0,
					total_revenue REAL DEFAULT 0,
					total_expenses REAL DEFAULT 0,
					net_cash_flow REAL DEFAULT 0,
					health_score INTEGER DEFAULT 0
				)`,
				`CREATE INDEX idx_statements_uploaded ON statements(uploaded_at)`,

				`CREATE TABLE IF NOT EXISTS transactions (
					id TEXT PRIMARY KEY,
					statement_id TEXT NOT NULL,
					date DATETIME NOT NULL,
					description TEXT NOT NULL,
					amount REAL NOT NULL,
					running_balance REAL NOT NULL DEFAULT 0,
					category TEXT NOT NULL,
					confidence REAL NOT NULL DEFAULT 0,
					user_corrected BOOLEAN NOT NULL DEFAULT 0,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					FOREIGN KEY (statement_id) REFERENCES statements(id)
				)`,
				`CREATE INDEX idx_transactions_statement ON transactions(statement_id)`,
				`CREATE INDEX idx_transactions_date ON transactions(date)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     2,
		Description: "Index transactions by category",
		Up: func(tx *sql.Tx) error {
			_, err := tx.Exec(`CREATE INDEX IF NOT EXISTS idx_transactions_category ON transactions(category)`)
			return err
		},
	},
	{
		Version:     3,
		Description: "Content hash on transactions",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`ALTER TABLE transactions ADD COLUMN hash TEXT NOT NULL DEFAULT ''`,
				`CREATE INDEX IF NOT EXISTS idx_transactions_hash ON transactions(hash)`,
			}
			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
}

// Migrate applies all pending migrations in order.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_versions (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return fmt.Errorf("failed to create schema_versions table: %w", err)
	}

	var current int
	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(version), 0) FROM schema_versions`).Scan(&current)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	for _, migration := range migrations {
		if migration.Version <= current {
			continue
		}

		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin migration %d: %w", migration.Version, err)
		}

		if err := migration.Up(tx); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d (%s) failed: %w",
				migration.Version, migration.Description, err)
		}

		if _, err := tx.Exec(
			`INSERT INTO schema_versions (version) VALUES (?)`, migration.Version); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
		}

		slog.Info("Applied migration",
			"version", migration.Version,
			"description", migration.Description)
	}

	return nil
}
