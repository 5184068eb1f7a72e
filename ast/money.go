package ast

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Money is an exact amount of currency.
//
// It wraps decimal.Decimal and additionally remembers a negative zero, so an
// export holding "-0.00" formats back to "-0.00". A negative zero compares
// equal to zero and is not negative.
type Money struct {
	d       decimal.Decimal
	negZero bool
}

// ZeroMoney is 0.00.
var ZeroMoney = Money{}

// NewMoney wraps d.
func NewMoney(d decimal.Decimal) Money {
	return Money{d: d}
}

// MoneyFromString parses a decimal string such as "-12.30" or "-0.00".
func MoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, err
	}
	return Money{d: d, negZero: d.IsZero() && strings.HasPrefix(s, "-")}, nil
}

// RequireMoney is MoneyFromString that panics on malformed input.
func RequireMoney(s string) Money {
	m, err := MoneyFromString(s)
	if err != nil {
		panic(err)
	}
	return m
}

// Decimal returns the numeric value. The sign of a zero is lost.
func (m Money) Decimal() decimal.Decimal { return m.d }

func (m Money) IsZero() bool     { return m.d.IsZero() }
func (m Money) IsNegative() bool { return m.d.IsNegative() }

// IsNegativeZero reports whether m was written as a negative zero.
func (m Money) IsNegativeZero() bool { return m.negZero }

// Equal compares numeric values; -0.00 equals 0.00.
func (m Money) Equal(o Money) bool { return m.d.Equal(o.d) }

// Neg returns -m.
func (m Money) Neg() Money {
	return Money{d: m.d.Neg(), negZero: m.d.IsZero() && !m.negZero}
}

// Add returns m + o. A zero sum is negative only when both operands are
// negative zeros.
func (m Money) Add(o Money) Money {
	return Money{d: m.d.Add(o.d), negZero: m.negZero && o.negZero}
}

// Sub returns m - o.
func (m Money) Sub(o Money) Money {
	return m.Add(o.Neg())
}

// String renders m with exactly two fractional digits.
func (m Money) String() string {
	if m.negZero {
		return "-" + m.d.StringFixed(2)
	}
	return m.d.StringFixed(2)
}

// FormatMoney renders an amount the way statement exports print them.
func FormatMoney(m Money) string {
	return m.String()
}

// IsCredit reports whether an amount counts towards total credits. Zero, negative
// zero included, counts as a credit.
func IsCredit(amount Money) bool {
	return !amount.IsNegative()
}

// Totals sums credits (non-negative amounts) and debits (negative amounts).
func Totals(records []*Record) (credits, debits Money) {
	for _, r := range records {
		if IsCredit(r.Amount) {
			credits = credits.Add(r.Amount)
		} else {
			debits = debits.Add(r.Amount)
		}
	}
	return credits, debits
}
