package renderer

import (
	"github.com/khata-io/khata"
)

// Ledger is the view struct for a user ledger report. Amounts are already
// formatted for the profile's display currency.
type Ledger struct {
	// Name of the user the ledger belongs to.
	Name string `json:"name"`
	// Bank and AccountNumber identify the underlying account.
	Bank          string `json:"bank,omitempty"`
	AccountNumber string `json:"accountNumber,omitempty"`
	// OpeningBalance is the balance recorded when the user was created.
	OpeningBalance string `json:"openingBalance"`
	// Balance is the derived current balance.
	Balance string `json:"balance"`
	// Transactions, newest first.
	Transactions []LedgerTransaction `json:"transactions"`
}

// LedgerTransaction represents a single ledger entry.
type LedgerTransaction struct {
	Date         string `json:"date"`
	Type         string `json:"type"`
	Amount       string `json:"amount"`
	Counterparty string `json:"counterparty"`
	Note         string `json:"note,omitempty"`
}

// NewLedger creates the ledger view from a service result.
func NewLedger(l khata.UserLedger) *Ledger {
	cur := l.Profile.DisplayCurrency()
	v := &Ledger{
		Name:           l.Profile.Name,
		Bank:           l.Profile.Bank,
		AccountNumber:  l.Profile.AccountNumber,
		OpeningBalance: l.Profile.CurrentBalance.Display(cur),
		Balance:        l.Balance.Display(cur),
		Transactions:   make([]LedgerTransaction, 0, len(l.Transactions)),
	}
	for _, tx := range l.Transactions {
		date := tx.Date
		if when, ok := tx.When(); ok {
			date = when.Format("2006-01-02")
		}
		v.Transactions = append(v.Transactions, LedgerTransaction{
			Date:         date,
			Type:         string(tx.Type),
			Amount:       tx.Amount.Display(cur),
			Counterparty: tx.BelongsTo,
			Note:         tx.Note,
		})
	}
	return v
}
