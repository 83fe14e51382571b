// Package event publishes ledger lifecycle events to an optional broker.
// Publishing is fire-and-forget: a failed publish never fails the operation
// that produced the event.
package event

import (
	"context"
	"time"
)

// Event types.
const (
	TypeUserCreated        = "user_created"
	TypeUserDeleted        = "user_deleted"
	TypeTransactionAdded   = "transaction_added"
	TypeTransactionDeleted = "transaction_deleted"
	TypeNoteAdded          = "note_added"
	TypeNoteDeleted        = "note_deleted"
)

// Event describes one ledger lifecycle change. Amount is the two-decimal
// string form so consumers need no decimal library.
type Event struct {
	Type          string    `json:"type"`
	Username      string    `json:"username"`
	TransactionID string    `json:"transaction_id,omitempty"`
	TxnType       string    `json:"txn_type,omitempty"`
	Amount        string    `json:"amount,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// Publisher delivers events to interested consumers.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Nop discards all events. It is the default when no broker is configured.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }

var _ Publisher = Nop{}
