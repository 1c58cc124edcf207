package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/ledgerlens/ledgerlens/internal/common"
	"github.com/ledgerlens/ledgerlens/internal/model"
)

// GetLearnedPatterns returns every learned pattern in insertion order.
func (s *SQLiteStorage) GetLearnedPatterns(ctx context.Context) ([]model.PatternEntry, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT pattern, category, confidence, match_type, times_used, created_at, updated_at
		FROM learned_patterns
		ORDER BY created_at ASC, pattern ASC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get learned patterns: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []model.PatternEntry
	for rows.Next() {
		var entry model.PatternEntry
		if err := rows.Scan(
			&entry.Pattern, &entry.Category, &entry.Confidence,
			&entry.MatchType, &entry.TimesUsed, &entry.CreatedAt, &entry.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan learned pattern: %w", err)
		}
		entry.Learned = true
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating learned patterns: %w", err)
	}

	return entries, nil
}

// SaveLearnedPattern inserts a learned pattern or, if the pattern text
// already exists, updates its category, counters and timestamps.
func (s *SQLiteStorage) SaveLearnedPattern(ctx context.Context, entry *model.PatternEntry) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if entry == nil || entry.Pattern == "" {
		return fmt.Errorf("%w: empty pattern text", common.ErrInvalidPattern)
	}
	if !entry.Category.Valid() {
		return fmt.Errorf("%w: unknown category %q", common.ErrInvalidPattern, entry.Category)
	}

	query := `
		INSERT INTO learned_patterns (pattern, category, confidence, match_type, times_used)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(pattern) DO UPDATE SET
			category = excluded.category,
			confidence = excluded.confidence,
			times_used = excluded.times_used,
			updated_at = CURRENT_TIMESTAMP
	`

	matchType := entry.MatchType
	if matchType == "" {
		matchType = model.MatchContains
	}

	if _, err := s.db.ExecContext(ctx, query,
		entry.Pattern, entry.Category, entry.Confidence, matchType, entry.TimesUsed,
	); err != nil {
		return fmt.Errorf("failed to save learned pattern: %w", err)
	}

	entry.UpdatedAt = time.Now()
	return nil
}

// DeleteLearnedPattern removes a learned pattern by its pattern text.
func (s *SQLiteStorage) DeleteLearnedPattern(ctx context.Context, patternText string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx,
		`DELETE FROM learned_patterns WHERE pattern = ?`, patternText)
	if err != nil {
		return fmt.Errorf("failed to delete learned pattern: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("learned pattern %q: %w", patternText, common.ErrNotFound)
	}

	return nil
}
