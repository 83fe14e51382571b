package khata

import (
	"strings"
	"time"
)

// DefaultCurrency is used to display amounts for profiles created before the
// currency field existed.
const DefaultCurrency = "INR"

// Profile is a user's stored account details.
//
// CurrentBalance is the opening balance baseline. It is never updated when
// transactions are added or removed; the displayed balance is always derived
// with CurrentBalance.
type Profile struct {
	Name           string    `json:"name"`
	AccountNumber  string    `json:"accountNumber"`
	Bank           string    `json:"bank"`
	CurrentBalance Amount    `json:"currentBalance"`
	Currency       string    `json:"currency,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Key returns the storage key for this profile: the lower-cased, trimmed
// username. Username collision is determined by this key.
func (p Profile) Key() string { return UserKey(p.Name) }

// DisplayCurrency returns the currency used to format this user's amounts.
func (p Profile) DisplayCurrency() string {
	if p.Currency == "" {
		return DefaultCurrency
	}
	return p.Currency
}

// UserKey normalizes a username into its storage key.
func UserKey(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}
