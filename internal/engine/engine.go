// Package engine implements the categorization engine that assigns every
// transaction a category and confidence.
package engine

import (
	"log/slog"

	"github.com/ledgerlens/ledgerlens/internal/model"
	"github.com/ledgerlens/ledgerlens/internal/registry"
)

// FallbackConfidence is assigned when no pattern matches and the
// category is inferred from the amount sign alone.
const FallbackConfidence = 0.5

// Categorizer assigns categories by consulting the pattern registry,
// falling back to a sign-based default. Categorization never fails: the
// worst case is a low-confidence fallback.
type Categorizer struct {
	registry *registry.Registry
}

// New creates a categorizer backed by the given registry.
func New(reg *registry.Registry) *Categorizer {
	return &Categorizer{registry: reg}
}

// Categorize returns the category and confidence for a transaction.
// User-corrected transactions are authoritative and returned unchanged.
func (c *Categorizer) Categorize(txn model.Transaction) (model.Category, float64) {
	if txn.UserCorrected {
		return txn.Category, txn.Confidence
	}

	if match, ok := c.registry.Lookup(txn.Description); ok {
		return match.Category, match.Confidence
	}

	if txn.Amount > 0 {
		return model.CategoryOtherIncome, FallbackConfidence
	}
	return model.CategoryOtherExpense, FallbackConfidence
}

// CategorizeAll assigns a category to every transaction in place,
// preserving input order. The optional progress callback fires once per
// transaction.
func (c *Categorizer) CategorizeAll(txns []model.Transaction, progress func()) {
	for i := range txns {
		if txns[i].UserCorrected {
			if progress != nil {
				progress()
			}
			continue
		}
		category, confidence := c.Categorize(txns[i])
		txns[i].Category = category
		txns[i].Confidence = confidence
		if progress != nil {
			progress()
		}
	}

	slog.Debug("categorized batch", "count", len(txns))
}

// Correct applies a user override: the corrected category becomes
// authoritative (it is never re-categorized) and the registry learns a
// pattern from the transaction's description.
func (c *Categorizer) Correct(txn *model.Transaction, category model.Category) (string, error) {
	patternText, err := c.registry.Learn(txn.Description, category)
	if err != nil {
		return "", err
	}

	txn.Category = category
	txn.Confidence = 1.0
	txn.UserCorrected = true

	slog.Info("transaction corrected",
		"description", txn.Description,
		"category", category,
		"pattern", patternText)

	return patternText, nil
}
