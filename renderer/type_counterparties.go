package renderer

import (
	"github.com/khata-io/khata"
)

// Counterparties is the view struct for the per-counterparty summary report.
type Counterparties struct {
	// Name of the user the report belongs to.
	Name string `json:"name"`
	// Accounts is one row per counterparty, in the requested order.
	Accounts []CounterpartyAccount `json:"accounts"`
}

// CounterpartyAccount is one summary row.
type CounterpartyAccount struct {
	Name     string `json:"name"`
	Count    int    `json:"count"`
	Credit   string `json:"credit"`
	Debit    string `json:"debit"`
	Net      string `json:"net"`
	LastDate string `json:"lastDate,omitempty"`
}

// NewCounterparties creates the counterparty view from summary rows.
func NewCounterparties(p khata.Profile, summaries []khata.Summary) *Counterparties {
	cur := p.DisplayCurrency()
	v := &Counterparties{
		Name:     p.Name,
		Accounts: make([]CounterpartyAccount, 0, len(summaries)),
	}
	for _, s := range summaries {
		v.Accounts = append(v.Accounts, CounterpartyAccount{
			Name:     s.Name,
			Count:    s.Count,
			Credit:   s.TotalCredit.Display(cur),
			Debit:    s.TotalDebit.Display(cur),
			Net:      s.Net.Display(cur),
			LastDate: s.LastDate,
		})
	}
	return v
}
