// Package money provides the fixed-point amount type used for every balance
// computation. Amounts carry exactly two fractional digits; floats only appear
// at the API boundary.
package money

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

// Scale is the number of fractional digits an amount carries.
const Scale = 2

var (
	// ErrPrecision is returned when an input has more fractional digits than Scale.
	ErrPrecision = errors.New("amount has more than 2 fractional digits")
	// ErrInvalid is returned for inputs that are not numbers.
	ErrInvalid = errors.New("invalid amount")
)

// Money is a signed monetary amount with two fractional digits.
// The zero value is 0.00.
type Money struct {
	d decimal.Decimal
}

// Zero is 0.00.
var Zero = Money{}

// Max is the largest magnitude a stored amount or balance can hold
// (NUMERIC(14,2)).
var Max = Money{d: decimal.New(99999999999999, -Scale)}

// New converts a decimal, rejecting values that would need rounding.
func New(d decimal.Decimal) (Money, error) {
	rounded := d.Round(Scale)
	if !rounded.Equal(d) {
		return Money{}, fmt.Errorf("%w: %s", ErrPrecision, d.String())
	}
	return Money{d: rounded}, nil
}

// FromDecimal wraps a decimal read from storage, where the column scale already
// matches Scale.
func FromDecimal(d decimal.Decimal) Money {
	return Money{d: d.Round(Scale)}
}

// FromCents builds an amount from a count of cents.
func FromCents(cents int64) Money {
	return Money{d: decimal.New(cents, -Scale)}
}

// FromFloat converts an API float. The shortest decimal representation of f is
// used, so any value written with at most two fractional digits converts exactly.
func FromFloat(f float64) (Money, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Money{}, fmt.Errorf("%w: %v", ErrInvalid, f)
	}
	return New(decimal.NewFromFloat(f))
}

// Parse converts a decimal string such as "12.50".
func Parse(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("%w: %q", ErrInvalid, s)
	}
	return New(d)
}

// MustParse is Parse for constants; it panics on error.
func MustParse(s string) Money {
	m, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Money) Add(o Money) Money { return Money{d: m.d.Add(o.d)} }
func (m Money) Sub(o Money) Money { return Money{d: m.d.Sub(o.d)} }
func (m Money) Neg() Money { return Money{d: m.d.Neg()} }

// Cmp returns -1, 0 or +1.
func (m Money) Cmp(o Money) int { return m.d.Cmp(o.d) }
func (m Money) Equal(o Money) bool { return m.d.Equal(o.d) }
func (m Money) LessThan(o Money) bool { return m.d.LessThan(o.d) }
func (m Money) GreaterThan(o Money) bool { return m.d.GreaterThan(o.d) }
func (m Money) IsPositive() bool { return m.d.IsPositive() }
func (m Money) IsNegative() bool { return m.d.IsNegative() }
func (m Money) IsZero() bool { return m.d.IsZero() }

// InRange reports whether |m| <= Max.
func (m Money) InRange() bool { return m.d.Abs().LessThanOrEqual(Max.d) }
func (m Money) Decimal() decimal.Decimal { return m.d }
func (m Money) String() string { return m.d.StringFixed(Scale) }

// Float64 is the boundary representation returned to API clients.
func (m Money) Float64() float64 {
	f, _ := m.d.Float64()
	return f
}

// MarshalJSON encodes the amount as a JSON number with two fractional digits.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalJSON accepts a JSON number or a quoted decimal string.
func (m *Money) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		s, err := strconv.Unquote(string(data))
		if err != nil {
			return fmt.Errorf("%w: %s", ErrInvalid, data)
		}
		data = []byte(s)
	}
	parsed, err := Parse(string(data))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
