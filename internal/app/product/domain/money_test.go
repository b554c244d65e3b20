package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney_NormalizesCurrency(t *testing.T) {
	m := NewMoney(1999, 100, " usd ")
	assert.Equal(t, "USD", m.Currency())
	assert.Equal(t, "19.99", m.FloatString(2))
}

func TestNewMoney_ReducesFraction(t *testing.T) {
	m := NewMoney(1000, 100, "USD")
	assert.Equal(t, int64(10), m.Numerator())
	assert.Equal(t, int64(1), m.Denominator())
}

func TestNewMoneyFromDecimal(t *testing.T) {
	m, err := NewMoneyFromDecimal("19.99", "EUR")
	require.NoError(t, err)
	assert.True(t, m.Equals(NewMoney(1999, 100, "EUR")))

	_, err = NewMoneyFromDecimal("not-a-number", "EUR")
	assert.Error(t, err)
}

func TestMoneySigns(t *testing.T) {
	assert.True(t, NewMoney(1, 100, "USD").IsPositive())
	assert.True(t, NewMoney(0, 100, "USD").IsZero())
	assert.True(t, NewMoney(-1, 100, "USD").IsNegative())
}

func TestMoneyEquals(t *testing.T) {
	a := NewMoney(1999, 100, "USD")
	assert.True(t, a.Equals(NewMoney(3998, 200, "USD")))
	assert.False(t, a.Equals(NewMoney(1999, 100, "EUR")))
	assert.False(t, a.Equals(nil))
}

func TestMoneyAdd(t *testing.T) {
	sum := NewMoney(1999, 100, "USD").Add(NewMoney(1, 100, "USD"))
	assert.Equal(t, "20.00", sum.FloatString(2))

	assert.Panics(t, func() {
		NewMoney(1, 1, "USD").Add(NewMoney(1, 1, "EUR"))
	})
}

func TestMoneyString(t *testing.T) {
	assert.Equal(t, "19.99 USD", NewMoney(1999, 100, "USD").String())
}
