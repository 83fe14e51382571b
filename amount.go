package khata

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

func init() {
	// Amounts are persisted as bare JSON numbers, like the rest of the
	// documents the original files used.
	decimal.MarshalJSONWithoutQuotes = true
}

// Amount is an exact monetary value. Arithmetic never rounds; rounding to the
// currency's fraction happens only when the value is displayed.
type Amount struct {
	value decimal.Decimal
}

// A builds an Amount from any numeric value.
func A[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T) Amount {
	return Amount{value: newDecimal(value)}
}

func newDecimal[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt(int64(v))
	case int64:
		return decimal.NewFromInt(v)
	}
	return decimal.Zero
}

// ParseAmount parses a decimal string such as "100.50".
func ParseAmount(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, err
	}
	return Amount{value: d}, nil
}

func (a Amount) Add(b Amount) Amount  { return Amount{value: a.value.Add(b.value)} }
func (a Amount) Sub(b Amount) Amount  { return Amount{value: a.value.Sub(b.value)} }
func (a Amount) Neg() Amount          { return Amount{value: a.value.Neg()} }
func (a Amount) Abs() Amount          { return Amount{value: a.value.Abs()} }
func (a Amount) Equal(b Amount) bool  { return a.value.Equal(b.value) }
func (a Amount) LessThan(b Amount) bool { return a.value.LessThan(b.value) }
func (a Amount) IsZero() bool         { return a.value.IsZero() }
func (a Amount) IsPositive() bool     { return a.value.IsPositive() }
func (a Amount) IsNegative() bool     { return a.value.IsNegative() }

// String returns the exact decimal representation, without rounding.
func (a Amount) String() string { return a.value.String() }

// Fixed2 returns the value rounded to two decimal places, the precision every
// user-facing surface reports.
func (a Amount) Fixed2() string { return a.value.StringFixed(2) }

// Display formats the amount in the given ISO currency, rounded to the
// currency's fraction with its symbol (e.g. "₹1,234.50" for INR).
func (a Amount) Display(currency string) string {
	// the Money constructor is the only way to get a never-nil currency.
	cur := *money.New(0, currency).Currency()
	minor := a.value.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(minor.IntPart())
}

func (a Amount) MarshalJSON() ([]byte, error)  { return a.value.MarshalJSON() }
func (a *Amount) UnmarshalJSON(b []byte) error { return a.value.UnmarshalJSON(b) }
