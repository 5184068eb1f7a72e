package ast

import (
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/shopspring/decimal"
)

func TestMoneyNegativeZero(t *testing.T) {
	negZero := RequireMoney("-0.00")
	assert.True(t, negZero.IsNegativeZero())
	assert.True(t, negZero.IsZero())
	assert.False(t, negZero.IsNegative())
	assert.True(t, negZero.Equal(ZeroMoney))
	assert.True(t, IsCredit(negZero))
	assert.Equal(t, "-0.00", negZero.String())

	assert.False(t, RequireMoney("0.00").IsNegativeZero())
	assert.False(t, RequireMoney("-0.50").IsNegativeZero())
	assert.False(t, NewMoney(decimal.Zero).IsNegativeZero())
}

func TestMoneyArithmetic(t *testing.T) {
	tests := []struct {
		name string
		got  Money
		want string
	}{
		{"add", RequireMoney("1.25").Add(RequireMoney("-0.75")), "0.50"},
		{"sub", RequireMoney("1.25").Sub(RequireMoney("-0.75")), "2.00"},
		{"cancel", RequireMoney("5.00").Add(RequireMoney("-5.00")), "0.00"},
		{"negative zeros", RequireMoney("-0.00").Add(RequireMoney("-0.00")), "-0.00"},
		{"mixed zeros", RequireMoney("-0.00").Add(ZeroMoney), "0.00"},
		{"zero minus negative zero", ZeroMoney.Sub(RequireMoney("-0.00")), "0.00"},
		{"negative zero minus zero", RequireMoney("-0.00").Sub(ZeroMoney), "-0.00"},
		{"neg zero", ZeroMoney.Neg(), "-0.00"},
		{"neg negative zero", RequireMoney("-0.00").Neg(), "0.00"},
		{"neg", RequireMoney("3.10").Neg(), "-3.10"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got.String())
		})
	}
}

func TestMoneyFromString(t *testing.T) {
	m, err := MoneyFromString("-12.30")
	assert.NoError(t, err)
	assert.True(t, m.Decimal().Equal(decimal.RequireFromString("-12.3")))

	_, err = MoneyFromString("abc")
	assert.Error(t, err)
}
