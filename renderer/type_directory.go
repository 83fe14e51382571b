package renderer

import (
	"github.com/khata-io/khata"
)

// Directory is the view struct for the user directory report.
type Directory struct {
	Users []DirectoryRow `json:"users"`
}

// DirectoryRow is one user with its derived balance, or the reason the entry
// could not be read.
type DirectoryRow struct {
	Name    string `json:"name"`
	Bank    string `json:"bank,omitempty"`
	Balance string `json:"balance,omitempty"`
	Error   string `json:"error,omitempty"`
}

// NewDirectory creates the directory view from directory entries.
func NewDirectory(entries []khata.DirectoryEntry) *Directory {
	d := &Directory{Users: make([]DirectoryRow, 0, len(entries))}
	for _, e := range entries {
		row := DirectoryRow{Name: e.Username}
		if e.Profile != nil {
			row.Name = e.Profile.Name
			row.Bank = e.Profile.Bank
			row.Balance = e.Balance.Display(e.Profile.DisplayCurrency())
		}
		if e.Err != nil {
			row.Error = "unreadable"
		}
		d.Users = append(d.Users, row)
	}
	return d
}
