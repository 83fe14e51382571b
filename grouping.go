package khata

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Summary aggregates a user's transactions for one counterparty.
type Summary struct {
	// Name is the counterparty as first seen in the head-first list, trimmed.
	Name        string `json:"name"`
	Count       int    `json:"count"`
	TotalCredit Amount `json:"totalCredit"`
	TotalDebit  Amount `json:"totalDebit"`
	// Net is TotalCredit - TotalDebit.
	Net Amount `json:"netAmount"`
	// LastDate is the raw date string of the most recent transaction. When no
	// date in the group parses, it falls back to the head-most transaction's
	// date string.
	LastDate string `json:"lastTransactionDate"`

	last   time.Time // parsed LastDate, zero when unparseable
	hasTime bool
}

// Counterparties returns the distinct non-empty counterparties of the list,
// in order of first appearance in the head-first (most-recent-first) list.
// Distinctness is decided on the trimmed, case-folded key; the returned
// strings keep the first-seen trimmed spelling.
func Counterparties(txns []Transaction) []string {
	seen := make(map[string]struct{})
	var names []string
	for _, tx := range txns {
		key := tx.Counterparty()
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		names = append(names, strings.TrimSpace(tx.BelongsTo))
	}
	return names
}

// Filter returns the transactions whose counterparty key equals name's key,
// preserving the list order.
func Filter(txns []Transaction, name string) []Transaction {
	key := strings.ToLower(strings.TrimSpace(name))
	var matched []Transaction
	for _, tx := range txns {
		if tx.Counterparty() == key {
			matched = append(matched, tx)
		}
	}
	return matched
}

// Summarize aggregates the transactions belonging to one counterparty.
// Matching trims and case-folds both sides, the single invariant used
// everywhere counterparties are compared.
func Summarize(txns []Transaction, name string) Summary {
	matched := Filter(txns, name)
	s := Summary{Name: strings.TrimSpace(name)}
	for i, tx := range matched {
		if i == 0 {
			s.Name = strings.TrimSpace(tx.BelongsTo)
			s.LastDate = tx.Date
		}
		s.Count++
		switch tx.Type {
		case Credit:
			s.TotalCredit = s.TotalCredit.Add(tx.Amount)
		case Debit:
			s.TotalDebit = s.TotalDebit.Add(tx.Amount)
		}
		if when, ok := tx.When(); ok {
			if !s.hasTime || when.After(s.last) {
				s.last = when
				s.hasTime = true
				s.LastDate = tx.Date
			}
		}
	}
	s.Net = s.TotalCredit.Sub(s.TotalDebit)
	return s
}

// SummarizeAll groups the whole list by counterparty in one pass. The
// resulting summaries partition the list exactly: every transaction with a
// non-empty counterparty lands in exactly one summary. Summaries come back
// in first-appearance order; use SortSummaries for other orders.
func SummarizeAll(txns []Transaction) []Summary {
	index := make(map[string]int)
	var summaries []Summary
	for _, tx := range txns {
		key := tx.Counterparty()
		if key == "" {
			continue
		}
		i, ok := index[key]
		if !ok {
			i = len(summaries)
			index[key] = i
			summaries = append(summaries, Summary{
				Name:     strings.TrimSpace(tx.BelongsTo),
				LastDate: tx.Date,
			})
		}
		s := &summaries[i]
		s.Count++
		switch tx.Type {
		case Credit:
			s.TotalCredit = s.TotalCredit.Add(tx.Amount)
		case Debit:
			s.TotalDebit = s.TotalDebit.Add(tx.Amount)
		}
		if when, ok := tx.When(); ok {
			if !s.hasTime || when.After(s.last) {
				s.last = when
				s.hasTime = true
				s.LastDate = tx.Date
			}
		}
	}
	for i := range summaries {
		summaries[i].Net = summaries[i].TotalCredit.Sub(summaries[i].TotalDebit)
	}
	return summaries
}

// SummaryOrder selects a sort order for summaries.
type SummaryOrder int

const (
	// ByName sorts alphabetically, case-insensitively.
	ByName SummaryOrder = iota
	// ByAbsNet sorts by absolute net amount, largest first.
	ByAbsNet
	// ByCount sorts by transaction count, largest first.
	ByCount
	// ByRecency sorts by last activity, most recent first; groups with no
	// parseable date sort last.
	ByRecency
)

// ParseSummaryOrder parses a sort order name.
func ParseSummaryOrder(s string) (SummaryOrder, error) {
	switch s {
	case "", "name":
		return ByName, nil
	case "net":
		return ByAbsNet, nil
	case "count":
		return ByCount, nil
	case "recent":
		return ByRecency, nil
	default:
		return 0, fmt.Errorf("unknown sort order: %q (want name, net, count or recent)", s)
	}
}

// SortSummaries sorts in place with a stable comparison; ties keep their
// original relative order.
func SortSummaries(summaries []Summary, order SummaryOrder) {
	sort.SliceStable(summaries, func(i, j int) bool {
		a, b := summaries[i], summaries[j]
		switch order {
		case ByAbsNet:
			return b.Net.Abs().LessThan(a.Net.Abs())
		case ByCount:
			return b.Count < a.Count
		case ByRecency:
			if a.hasTime != b.hasTime {
				return a.hasTime
			}
			return b.last.Before(a.last)
		default:
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		}
	})
}
