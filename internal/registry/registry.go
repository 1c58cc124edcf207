// Package registry holds the ordered categorization rules: a mutable
// learned tier fed by user corrections and an immutable default tier of
// keyword rules. Learned patterns always take precedence over defaults.
package registry

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ledgerlens/ledgerlens/internal/common"
	"github.com/ledgerlens/ledgerlens/internal/model"
)

// LearnedConfidence is the initial confidence for a freshly taught pattern.
const LearnedConfidence = 0.80

// Match is the result of a successful lookup.
type Match struct {
	Pattern    string
	Category   model.Category
	MatchType  model.MatchType
	Confidence float64
	Learned    bool
}

// Registry is the one piece of mutable shared state in a processing
// session. A single mutex guards mutation so categorization lookups
// never observe a partially-applied teach or forget.
type Registry struct {
	mu       sync.RWMutex
	learned  []model.PatternEntry
	defaults []model.PatternEntry
}

// New creates a registry seeded with the default rules.
func New() *Registry {
	defaults := make([]model.PatternEntry, len(defaultRules))
	now := time.Now()
	for i, rule := range defaultRules {
		defaults[i] = model.PatternEntry{
			Pattern:    rule.pattern,
			Category:   rule.category,
			Confidence: rule.confidence,
			MatchType:  model.MatchContains,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
	}
	return &Registry{defaults: defaults}
}

// Restore loads previously persisted learned patterns in their stored
// (insertion) order. Invalid entries are skipped.
func (r *Registry) Restore(entries []model.PatternEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, entry := range entries {
		if entry.Pattern == "" || !entry.Category.Valid() {
			continue
		}
		entry.Learned = true
		if entry.MatchType == "" {
			entry.MatchType = model.MatchContains
		}
		r.learned = append(r.learned, entry)
	}
}

// Lookup finds the best rule for a description. The learned tier is
// consulted first; within a tier the highest-confidence match wins and
// earlier declaration breaks ties. A learned hit increments the
// pattern's usage counter.
func (r *Registry) Lookup(description string) (*Match, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if idx := bestMatch(r.learned, description); idx >= 0 {
		r.learned[idx].TimesUsed++
		entry := r.learned[idx]
		return &Match{
			Pattern:    entry.Pattern,
			Category:   entry.Category,
			MatchType:  entry.MatchType,
			Confidence: entry.Confidence,
			Learned:    true,
		}, true
	}

	if idx := bestMatch(r.defaults, description); idx >= 0 {
		entry := r.defaults[idx]
		return &Match{
			Pattern:    entry.Pattern,
			Category:   entry.Category,
			MatchType:  entry.MatchType,
			Confidence: entry.Confidence,
		}, true
	}

	return nil, false
}

// Learn derives a pattern key from the description and records it for
// the given category. Re-teaching an existing key increments its usage
// counter and re-points its category instead of duplicating the entry.
// Returns the derived pattern text.
func (r *Registry) Learn(description string, category model.Category) (string, error) {
	key := DeriveKey(description)
	if key == "" {
		return "", fmt.Errorf("%w: empty description", common.ErrInvalidPattern)
	}
	if !category.Valid() {
		return "", fmt.Errorf("%w: unknown category %q", common.ErrInvalidPattern, category)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	for i := range r.learned {
		if r.learned[i].Pattern == key {
			r.learned[i].TimesUsed++
			r.learned[i].Category = category
			r.learned[i].UpdatedAt = now
			return key, nil
		}
	}

	r.learned = append(r.learned, model.PatternEntry{
		Pattern:    key,
		Category:   category,
		Confidence: LearnedConfidence,
		MatchType:  model.MatchContains,
		TimesUsed:  1,
		Learned:    true,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	return key, nil
}

// Forget removes a learned pattern by its exact pattern text. Default
// rules cannot be removed.
func (r *Registry) Forget(patternText string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.learned {
		if r.learned[i].Pattern == patternText {
			r.learned = append(r.learned[:i], r.learned[i+1:]...)
			return true
		}
	}
	return false
}

// Learned returns a snapshot of the learned tier in insertion order.
func (r *Registry) Learned() []model.PatternEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.PatternEntry, len(r.learned))
	copy(out, r.learned)
	return out
}

// Entries returns a snapshot of every rule, learned tier first.
func (r *Registry) Entries() []model.PatternEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.PatternEntry, 0, len(r.learned)+len(r.defaults))
	out = append(out, r.learned...)
	out = append(out, r.defaults...)
	return out
}

// DeriveKey reduces a description to its learned-pattern key: the first
// two whitespace-delimited tokens, uppercased, so near-duplicate
// merchant strings collapse onto the same key.
func DeriveKey(description string) string {
	tokens := strings.Fields(strings.ToUpper(description))
	if len(tokens) == 0 {
		return ""
	}
	if len(tokens) == 1 {
		return tokens[0]
	}
	return tokens[0] + " " + tokens[1]
}

// bestMatch scans one tier and returns the index of the
// highest-confidence matching entry, or -1. Strict greater-than keeps
// the first-declared entry on confidence ties.
func bestMatch(entries []model.PatternEntry, description string) int {
	desc := strings.ToLower(description)
	best := -1
	bestConfidence := -1.0

	for i := range entries {
		if !matches(entries[i], desc) {
			continue
		}
		if entries[i].Confidence > bestConfidence {
			best = i
			bestConfidence = entries[i].Confidence
		}
	}
	return best
}

func matches(entry model.PatternEntry, lowerDesc string) bool {
	pattern := strings.ToLower(entry.Pattern)
	switch entry.MatchType {
	case model.MatchExact:
		return lowerDesc == pattern
	case model.MatchStartsWith:
		return strings.HasPrefix(lowerDesc, pattern)
	default:
		return strings.Contains(lowerDesc, pattern)
	}
}
