package khata

import (
	"encoding/json"
	"testing"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in      string
		want    Amount
		wantErr bool
	}{
		{in: "100.50", want: A(100.50)},
		{in: "0", want: A(0)},
		{in: "-3", want: A(-3)},
		{in: "abc", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tc := range tests {
		got, err := ParseAmount(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseAmount(%q): expected an error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseAmount(%q): %v", tc.in, err)
			continue
		}
		if !got.Equal(tc.want) {
			t.Errorf("ParseAmount(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestAmountArithmeticIsExact(t *testing.T) {
	// 0.1 + 0.2 is the classic float trap; decimals must stay exact.
	sum := A(0.1).Add(A(0.2))
	if !sum.Equal(A(0.3)) {
		t.Errorf("0.1 + 0.2 = %s, want 0.3", sum)
	}
	if got := A(100).Sub(A(30)).Fixed2(); got != "70.00" {
		t.Errorf("100 - 30 = %s, want 70.00", got)
	}
	if got := A(-5).Abs(); !got.Equal(A(5)) {
		t.Errorf("abs(-5) = %s, want 5", got)
	}
}

func TestAmountFixed2(t *testing.T) {
	tests := []struct {
		in   Amount
		want string
	}{
		{A(50), "50.00"},
		{A(0.005), "0.01"},
		{A(-20.1), "-20.10"},
	}
	for _, tc := range tests {
		if got := tc.in.Fixed2(); got != tc.want {
			t.Errorf("Fixed2(%s) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestAmountJSONRoundTrip(t *testing.T) {
	// Amounts are bare JSON numbers, matching the stored document format.
	body, err := json.Marshal(A(100.50))
	if err != nil {
		t.Fatal(err)
	}
	if string(body) != "100.5" {
		t.Errorf("marshaled to %s, want a bare number 100.5", body)
	}
	var back Amount
	if err := json.Unmarshal(body, &back); err != nil {
		t.Fatal(err)
	}
	if !back.Equal(A(100.50)) {
		t.Errorf("round trip changed the value: %s", back)
	}
}

func TestAmountDisplay(t *testing.T) {
	got := A(1234.5).Display("INR")
	if got == "" {
		t.Fatal("Display returned an empty string")
	}
	// Exact symbol placement belongs to go-money; the digits must be there.
	for _, digits := range []string{"234", "50"} {
		if !containsDigits(got, digits) {
			t.Errorf("Display(1234.5, INR) = %q, missing %q", got, digits)
		}
	}
}

func containsDigits(s, digits string) bool {
	i := 0
	for _, r := range s {
		if i < len(digits) && byte(r) == digits[i] {
			i++
		}
	}
	return i == len(digits)
}
