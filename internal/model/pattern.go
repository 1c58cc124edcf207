package model

import "time"

// MatchType controls how a pattern's text is compared against a description.
type MatchType string

// Match type constants.
const (
	MatchExact      MatchType = "exact"
	MatchStartsWith MatchType = "starts_with"
	MatchContains   MatchType = "contains"
)

// PatternEntry represents one categorization rule: default entries are
// seeded at startup and immutable, learned entries come from user
// corrections and carry a usage counter.
type PatternEntry struct {
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	Pattern    string    `json:"pattern"`
	Category   Category  `json:"category"`
	MatchType  MatchType `json:"match_type"`
	Confidence float64   `json:"confidence"`
	TimesUsed  int       `json:"times_used"`
	Learned    bool      `json:"learned"`
}
