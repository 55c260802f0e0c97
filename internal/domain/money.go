package domain

import (
	"fmt"
	"math"
	"strings"
)

// Money holds a non-negative amount in minor units (cents) with a 3-letter
// currency code. Structural equality via ==.
type Money struct {
	Cents    int64
	Currency string
}

func NewMoney(amount float64, currency string) (Money, error) {
	if amount < 0 {
		return Money{}, NewValidation("Money.NegativeAmount", "Amount cannot be negative.")
	}
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if len(currency) != 3 {
		return Money{}, NewValidation("Money.InvalidCurrency", "Currency must be a valid 3-letter ISO code.")
	}
	return Money{Cents: int64(math.Round(amount * 100)), Currency: currency}, nil
}

func ZeroMoney(currency string) Money {
	return Money{Currency: strings.ToUpper(currency)}
}

func (m Money) Amount() float64 { return float64(m.Cents) / 100 }

func (m Money) Add(other Money) (Money, error) {
	if m.Currency != other.Currency {
		return Money{}, NewValidation("Money.CurrencyMismatch", "Cannot add money with different currencies.")
	}
	return Money{Cents: m.Cents + other.Cents, Currency: m.Currency}, nil
}

func (m Money) String() string {
	return fmt.Sprintf("%.2f %s", m.Amount(), m.Currency)
}
