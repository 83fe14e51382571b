package khata

import (
	"fmt"
	"strings"
	"time"
)

// TxnType is the direction of a transaction. The sign is applied at
// aggregation time, never stored on the amount itself.
type TxnType string

const (
	Credit TxnType = "credit"
	Debit  TxnType = "debit"
)

// ParseTxnType parses a transaction type string.
func ParseTxnType(s string) (TxnType, error) {
	switch TxnType(strings.ToLower(strings.TrimSpace(s))) {
	case Credit:
		return Credit, nil
	case Debit:
		return Debit, nil
	default:
		return "", fmt.Errorf("unknown transaction type: %q", s)
	}
}

// Transaction is a single credit or debit record in a user's ledger.
//
// The stored list is newest-first: new transactions are inserted at the head.
// Date is a user-supplied string and is not validated as a real calendar
// date; it is best-effort parsed only to order summaries by recency.
type Transaction struct {
	ID        string  `json:"id"`
	Type      TxnType `json:"type"`
	Amount    Amount  `json:"amount"`
	From      string  `json:"from,omitempty"`
	BelongsTo string  `json:"belongsTo"`
	Note      string  `json:"note,omitempty"`
	Date      string  `json:"date"`
}

// Signed returns the amount with the type's sign applied: positive for
// credit, negative for debit.
func (t Transaction) Signed() Amount {
	if t.Type == Debit {
		return t.Amount.Neg()
	}
	return t.Amount
}

// Counterparty returns the grouping key for this transaction: belongsTo
// trimmed of whitespace and case-folded. Counterparty matching is always
// performed on this key.
func (t Transaction) Counterparty() string {
	return strings.ToLower(strings.TrimSpace(t.BelongsTo))
}

// dateFormats are tried in order when parsing the free-form date string.
var dateFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02",
	"2006-1-2",
	"02/01/2006",
}

// When best-effort parses the transaction date. The second return value is
// false when the string matches none of the known layouts.
func (t Transaction) When() (time.Time, bool) {
	s := strings.TrimSpace(t.Date)
	for _, layout := range dateFormats {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// Validate checks the transaction fields and applies quick fixes where
// applicable (an empty date is set to now). It returns the validated, and
// potentially modified, transaction.
func (t Transaction) Validate() (Transaction, error) {
	typ, err := ParseTxnType(string(t.Type))
	if err != nil {
		return t, &ValidationError{Field: "type", Reason: `must be "credit" or "debit"`}
	}
	t.Type = typ
	if t.Amount.IsNegative() {
		return t, &ValidationError{Field: "amount", Reason: "must not be negative"}
	}
	if strings.TrimSpace(t.Date) == "" {
		t.Date = time.Now().Format(time.RFC3339)
	}
	return t, nil
}
