package renderer

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/khata-io/khata"
)

// renderHTML parses the markdown output to make sure each report is valid
// markdown, not just a string that happens to look like one. Tables are a GFM
// extension, so the parser needs it enabled to recognize them.
func renderHTML(t *testing.T, md string) string {
	t.Helper()
	var buf bytes.Buffer
	if err := goldmark.New(goldmark.WithExtensions(extension.Table)).Convert([]byte(md), &buf); err != nil {
		t.Fatalf("markdown does not parse: %v", err)
	}
	return buf.String()
}

func testProfile() khata.Profile {
	return khata.Profile{
		Name:           "alice",
		AccountNumber:  "1234",
		Bank:           "HDFC",
		CurrentBalance: khata.A(100),
		CreatedAt:      time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestRenderLedger(t *testing.T) {
	ledger := khata.UserLedger{
		Profile: testProfile(),
		Transactions: []khata.Transaction{
			{ID: "2", Type: khata.Credit, Amount: khata.A(50), BelongsTo: "Bob", Date: "2024-03-02"},
			{ID: "1", Type: khata.Debit, Amount: khata.A(20), BelongsTo: "Carol", Note: "lunch", Date: "2024-03-01"},
		},
		Balance: khata.A(130),
	}

	md := RenderLedger(NewLedger(ledger))

	for _, want := range []string{"# Ledger for alice", "HDFC", "Bob", "Carol", "lunch", "2024-03-02"} {
		if !strings.Contains(md, want) {
			t.Errorf("ledger report missing %q:\n%s", want, md)
		}
	}
	html := renderHTML(t, md)
	if !strings.Contains(html, "<h1") || !strings.Contains(html, "<table") {
		t.Errorf("ledger report did not produce a heading and a table:\n%s", html)
	}
}

func TestRenderLedgerEmpty(t *testing.T) {
	md := RenderLedger(NewLedger(khata.UserLedger{Profile: testProfile(), Balance: khata.A(100)}))
	if !strings.Contains(md, "No transactions recorded.") {
		t.Errorf("empty ledger should say so:\n%s", md)
	}
	renderHTML(t, md)
}

func TestRenderCounterparties(t *testing.T) {
	summaries := []khata.Summary{
		{Name: "Bob", Count: 2, TotalCredit: khata.A(70), TotalDebit: khata.A(20), Net: khata.A(50), LastDate: "2024-03-02"},
		{Name: "Carol", Count: 1, TotalDebit: khata.A(20), Net: khata.A(-20), LastDate: "2024-03-01"},
	}

	md := RenderCounterparties(NewCounterparties(testProfile(), summaries))

	for _, want := range []string{"# Counterparties of alice", "Bob", "Carol", "2024-03-02"} {
		if !strings.Contains(md, want) {
			t.Errorf("counterparties report missing %q:\n%s", want, md)
		}
	}
	html := renderHTML(t, md)
	if !strings.Contains(html, "<table") {
		t.Errorf("counterparties report did not produce a table:\n%s", html)
	}
}

func TestRenderNotes(t *testing.T) {
	notes := []khata.Note{
		{ID: "1", Content: "call the bank", CreatedAt: time.Date(2024, 3, 2, 9, 30, 0, 0, time.UTC)},
	}
	md := RenderNotes(NewNotes("alice", notes))
	if !strings.Contains(md, "call the bank") || !strings.Contains(md, "2024-03-02 09:30") {
		t.Errorf("notes report missing content:\n%s", md)
	}
	renderHTML(t, md)

	empty := RenderNotes(NewNotes("alice", nil))
	if !strings.Contains(empty, "No notes yet.") {
		t.Errorf("empty notes should say so:\n%s", empty)
	}
}

func TestRenderDirectory(t *testing.T) {
	profile := testProfile()
	entries := []khata.DirectoryEntry{
		{Username: "alice", Profile: &profile, Balance: khata.A(130)},
		{Username: "mallory", Err: errFake},
	}

	md := RenderDirectory(NewDirectory(entries))

	if !strings.Contains(md, "alice") || !strings.Contains(md, "mallory") {
		t.Errorf("directory report missing users:\n%s", md)
	}
	if !strings.Contains(md, "(unreadable)") {
		t.Errorf("unreadable entry should be flagged:\n%s", md)
	}
	renderHTML(t, md)
}

var errFake = errTest("corrupt document")

type errTest string

func (e errTest) Error() string { return string(e) }
