// Package normalize converts raw statement text lines into canonical
// transaction records. Parsing follows a small explicit grammar: a line
// is a full match (date and amount), a partial match (date only or
// amount only), or no match. Only full matches produce transactions;
// everything else is logged at debug level and dropped.
package normalize

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/ledgerlens/ledgerlens/internal/common"
	"github.com/ledgerlens/ledgerlens/internal/model"
)

// Outcome classifies how much of a line the grammar recognized.
type Outcome int

// Parse outcomes.
const (
	OutcomeNoMatch Outcome = iota
	OutcomeDateOnly
	OutcomeAmountOnly
	OutcomeFullMatch
)

// String returns a human-readable outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeDateOnly:
		return "date_only"
	case OutcomeAmountOnly:
		return "amount_only"
	case OutcomeFullMatch:
		return "full_match"
	default:
		return "no_match"
	}
}

// dateLayouts are tried in order; the first successful parse wins.
// Month/day layouts without a year resolve against the configured
// statement year.
var dateLayouts = []string{
	"01/02/2006",
	"1/2/2006",
	"01/02/06",
	"01-02-2006",
	"01-02-06",
	"2006-01-02",
	"01/02",
	"1/2",
}

var (
	datePattern = regexp.MustCompile(`\b(\d{4}-\d{2}-\d{2}|\d{1,2}[/-]\d{1,2}(?:[/-]\d{2,4})?)\b`)

	// amountPattern recognizes currency tokens, including negative
	// markers as a leading minus, trailing minus, or parentheses.
	amountPattern = regexp.MustCompile(`\(?-?\$?-?\d[\d,]*\.\d{2}\)?-?`)
)

// debitKeywords force a positive parsed amount negative when present
// anywhere on the line.
var debitKeywords = []string{"debit", "withdrawal", "payment", "purchase"}

// Normalizer turns raw text lines into transactions. It is a pure
// function of its inputs and performs no I/O.
type Normalizer struct {
	year    int
	maxDesc int
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithYear sets the statement year used to resolve MM/DD dates.
func WithYear(year int) Option {
	return func(n *Normalizer) {
		if year > 0 {
			n.year = year
		}
	}
}

// New creates a Normalizer. MM/DD dates default to the current year.
func New(opts ...Option) *Normalizer {
	n := &Normalizer{
		year:    time.Now().Year(),
		maxDesc: model.MaxDescriptionLength,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize parses every line and returns the full matches in input
// order. Failures are local: unparseable lines are dropped, never fatal.
func (n *Normalizer) Normalize(lines []string) []model.Transaction {
	txns := make([]model.Transaction, 0, len(lines))
	for _, line := range lines {
		txn, outcome := n.ParseLine(line)
		if outcome != OutcomeFullMatch {
			common.LogDebug("dropping statement line", common.Fields{
				"error": &common.ParseError{Line: line, Reason: outcome.String()},
			})
			continue
		}
		txns = append(txns, txn)
	}
	return txns
}

// ParseLine applies the line grammar to a single raw line.
func (n *Normalizer) ParseLine(line string) (model.Transaction, Outcome) {
	dateToken := datePattern.FindString(line)
	amountTokens := amountPattern.FindAllString(line, -1)

	switch {
	case dateToken == "" && len(amountTokens) == 0:
		return model.Transaction{}, OutcomeNoMatch
	case dateToken == "":
		return model.Transaction{}, OutcomeAmountOnly
	case len(amountTokens) == 0:
		return model.Transaction{}, OutcomeDateOnly
	}

	// A date-shaped token that no layout accepts means the line is not
	// in the grammar at all, not that it carries only an amount.
	date, ok := n.parseDate(dateToken)
	if !ok {
		return model.Transaction{}, OutcomeNoMatch
	}

	// Running-balance figures trail the transaction amount on most
	// statement formats, so the last currency token is the amount.
	amount, ok := parseAmount(amountTokens[len(amountTokens)-1])
	if !ok {
		return model.Transaction{}, OutcomeDateOnly
	}

	desc := n.extractDescription(line, dateToken, amountTokens)
	if len(desc) <= 3 {
		return model.Transaction{}, OutcomeNoMatch
	}

	if amount > 0 && containsDebitKeyword(line) {
		amount = -amount
	}

	return model.Transaction{
		Date:        date,
		Description: desc,
		Amount:      amount,
	}, OutcomeFullMatch
}

// parseDate tries each layout in order and accepts the first success.
func (n *Normalizer) parseDate(token string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, token)
		if err != nil {
			continue
		}
		if t.Year() == 0 {
			t = time.Date(n.year, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		}
		return t, true
	}
	return time.Time{}, false
}

// parseAmount converts a matched currency token to a signed value.
func parseAmount(token string) (float64, bool) {
	negative := strings.Contains(token, "-") ||
		(strings.HasPrefix(token, "(") && strings.HasSuffix(token, ")"))

	cleaned := strings.NewReplacer("$", "", ",", "", "(", "", ")", "", "-", "").Replace(token)
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	if negative {
		value = -value
	}
	return value, true
}

// extractDescription strips the date and amount tokens from the line,
// collapses whitespace and truncates to the description bound.
func (n *Normalizer) extractDescription(line, dateToken string, amountTokens []string) string {
	desc := strings.Replace(line, dateToken, " ", 1)
	for _, token := range amountTokens {
		desc = strings.Replace(desc, token, " ", 1)
	}
	desc = strings.Join(strings.Fields(desc), " ")
	if runes := []rune(desc); len(runes) > n.maxDesc {
		desc = string(runes[:n.maxDesc])
	}
	return strings.TrimSpace(desc)
}

func containsDebitKeyword(line string) bool {
	lower := strings.ToLower(line)
	for _, kw := range debitKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// ApplyRunningBalance sorts transactions chronologically and folds the
// opening balance left to right, setting RunningBalance on each record.
// Balance computation is inherently sequential, so this is the one place
// ordering matters.
func ApplyRunningBalance(txns []model.Transaction, opening float64) {
	sort.SliceStable(txns, func(i, j int) bool {
		return txns[i].Date.Before(txns[j].Date)
	})

	balance := opening
	for i := range txns {
		balance += txns[i].Amount
		txns[i].RunningBalance = balance
	}
}
