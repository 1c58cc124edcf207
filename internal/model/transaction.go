package model

import (
	"crypto/sha256"
	"fmt"
	"time"
)

// MaxDescriptionLength bounds transaction descriptions.
const MaxDescriptionLength = 50

// Transaction represents a single normalized statement line.
// Positive amounts are credits (deposits), negative amounts are debits.
type Transaction struct {
	Date           time.Time
	ID             string
	Description    string
	Amount         float64
	RunningBalance float64
	Category       Category
	Confidence     float64
	UserCorrected  bool
}

// GenerateHash creates a content hash for duplicate detection.
// Legitimately identical lines share a hash, so it is stored alongside
// the row identifier rather than serving as one.
func (t *Transaction) GenerateHash() string {
	data := fmt.Sprintf("%s:%.2f:%s",
		t.Date.Format("2006-01-02"),
		t.Amount,
		t.Description)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}

// IsCredit reports whether the transaction is a deposit.
func (t *Transaction) IsCredit() bool {
	return t.Amount > 0
}
