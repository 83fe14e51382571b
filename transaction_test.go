package khata

import (
	"testing"
	"time"
)

func TestParseTxnType(t *testing.T) {
	tests := []struct {
		in      string
		want    TxnType
		wantErr bool
	}{
		{in: "credit", want: Credit},
		{in: "debit", want: Debit},
		{in: " CREDIT ", want: Credit},
		{in: "transfer", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tc := range tests {
		got, err := ParseTxnType(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseTxnType(%q): expected an error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseTxnType(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseTxnType(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestTransactionSigned(t *testing.T) {
	credit := Transaction{Type: Credit, Amount: A(50)}
	if !credit.Signed().Equal(A(50)) {
		t.Errorf("credit signed = %s, want 50", credit.Signed())
	}
	debit := Transaction{Type: Debit, Amount: A(50)}
	if !debit.Signed().Equal(A(-50)) {
		t.Errorf("debit signed = %s, want -50", debit.Signed())
	}
}

func TestTransactionCounterparty(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Bob", "bob"},
		{"  bob ", "bob"},
		{"BOB", "bob"},
		{"", ""},
		{"   ", ""},
	}
	for _, tc := range tests {
		tx := Transaction{BelongsTo: tc.in}
		if got := tx.Counterparty(); got != tc.want {
			t.Errorf("Counterparty(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestTransactionWhen(t *testing.T) {
	tests := []struct {
		date string
		ok   bool
	}{
		{"2024-03-02", true},
		{"2024-3-2", true},
		{"02/01/2024", true},
		{"2024-03-02T15:04", true},
		{"2024-03-02T15:04:05Z", true},
		{"yesterday", false},
		{"", false},
	}
	for _, tc := range tests {
		tx := Transaction{Date: tc.date}
		if _, ok := tx.When(); ok != tc.ok {
			t.Errorf("When(%q) parseable = %v, want %v", tc.date, ok, tc.ok)
		}
	}
}

func TestTransactionValidate(t *testing.T) {
	t.Run("rejects unknown type", func(t *testing.T) {
		_, err := Transaction{Type: "transfer", Amount: A(10)}.Validate()
		if !IsValidation(err) {
			t.Errorf("expected a validation error, got %v", err)
		}
	})

	t.Run("rejects negative amount", func(t *testing.T) {
		_, err := Transaction{Type: Credit, Amount: A(-10)}.Validate()
		if !IsValidation(err) {
			t.Errorf("expected a validation error, got %v", err)
		}
	})

	t.Run("quick-fixes empty date", func(t *testing.T) {
		valid, err := Transaction{Type: Credit, Amount: A(10)}.Validate()
		if err != nil {
			t.Fatal(err)
		}
		if valid.Date == "" {
			t.Error("empty date was not quick-fixed")
		}
		if _, err := time.Parse(time.RFC3339, valid.Date); err != nil {
			t.Errorf("quick-fixed date %q is not RFC 3339: %v", valid.Date, err)
		}
	})

	t.Run("normalizes the type", func(t *testing.T) {
		valid, err := Transaction{Type: " DEBIT ", Amount: A(10), Date: "2024-01-01"}.Validate()
		if err != nil {
			t.Fatal(err)
		}
		if valid.Type != Debit {
			t.Errorf("type = %q, want %q", valid.Type, Debit)
		}
		if valid.Date != "2024-01-01" {
			t.Errorf("a present date must be kept, got %q", valid.Date)
		}
	})
}
