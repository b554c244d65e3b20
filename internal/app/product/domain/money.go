package domain

import (
	"math/big"
	"strings"
)

// Money is a fixed-point monetary value with a currency code.
// The amount is held as a big.Rat to avoid floating-point precision issues.
// Money is immutable - all operations return new instances.
type Money struct {
	amount   *big.Rat
	currency string
}

// NewMoney creates Money from numerator and denominator.
// For example: NewMoney(10000, 100, "USD") represents $100.00.
func NewMoney(numerator, denominator int64, currency string) *Money {
	if denominator == 0 {
		panic("money: denominator cannot be zero")
	}
	return &Money{
		amount:   big.NewRat(numerator, denominator),
		currency: strings.ToUpper(strings.TrimSpace(currency)),
	}
}

// NewMoneyFromDecimal creates Money from a decimal string such as "19.99".
func NewMoneyFromDecimal(decimal, currency string) (*Money, error) {
	rat := new(big.Rat)
	if _, ok := rat.SetString(decimal); !ok {
		return nil, ErrNonPositivePrice
	}
	return &Money{
		amount:   rat,
		currency: strings.ToUpper(strings.TrimSpace(currency)),
	}, nil
}

// Currency returns the ISO 4217 currency code.
func (m *Money) Currency() string {
	return m.currency
}

// Add returns a new Money that is the sum of m and other.
// Both operands must carry the same currency.
func (m *Money) Add(other *Money) *Money {
	if other.currency != m.currency {
		panic("money: currency mismatch")
	}
	return &Money{
		amount:   new(big.Rat).Add(m.amount, other.amount),
		currency: m.currency,
	}
}

// IsZero returns true if the amount is zero.
func (m *Money) IsZero() bool {
	return m.amount.Sign() == 0
}

// IsNegative returns true if the amount is negative.
func (m *Money) IsNegative() bool {
	return m.amount.Sign() < 0
}

// IsPositive returns true if the amount is strictly positive.
func (m *Money) IsPositive() bool {
	return m.amount.Sign() > 0
}

// Equals returns true if m and other have the same amount and currency.
func (m *Money) Equals(other *Money) bool {
	if other == nil {
		return false
	}
	return m.currency == other.currency && m.amount.Cmp(other.amount) == 0
}

// Numerator returns the numerator of the internal rational representation.
// Used for database persistence.
func (m *Money) Numerator() int64 {
	return m.amount.Num().Int64()
}

// Denominator returns the denominator of the internal rational representation.
// Used for database persistence.
func (m *Money) Denominator() int64 {
	return m.amount.Denom().Int64()
}

// Rat returns a copy of the internal big.Rat.
func (m *Money) Rat() *big.Rat {
	return new(big.Rat).Set(m.amount)
}

// FloatString returns a decimal string with the given precision, e.g. "19.99".
func (m *Money) FloatString(precision int) string {
	return m.amount.FloatString(precision)
}

// String returns "<amount> <currency>" with two decimal places.
func (m *Money) String() string {
	return m.amount.FloatString(2) + " " + m.currency
}

// validCurrency reports whether code is a three-letter uppercase currency code.
func validCurrency(code string) bool {
	if len(code) != 3 {
		return false
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
