package domain

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type Money struct {
	Amount   decimal.Decimal
	Currency currency.Unit
}

func NewMoney(amount int64, unit currency.Unit) Money {
	return Money{
		Amount:   decimal.NewFromInt(amount),
		Currency: unit,
	}
}

func ZeroMoney(unit currency.Unit) Money {
	return Money{Amount: decimal.Zero, Currency: unit}
}

// Add assumes both values share a currency; callers guard that at cart entry.
func (m Money) Add(other Money) Money {
	return Money{Amount: m.Amount.Add(other.Amount), Currency: m.Currency}
}

func (m Money) Times(quantity int) Money {
	return Money{Amount: m.Amount.Mul(decimal.NewFromInt(int64(quantity))), Currency: m.Currency}
}

func (m Money) SameCurrency(other Money) bool {
	return m.Currency.String() == other.Currency.String()
}

func (m Money) String() string {
	return m.Currency.String() + " " + m.Amount.StringFixed(2)
}
