// Package pricing computes cart subtotals, shipping fees and order totals.
package pricing

import (
	"github.com/nikolayk812/zini-storefront/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

const (
	DefaultDeliveryFee           = 99
	DefaultFreeShippingThreshold = 1000
)

type Policy struct {
	DeliveryFee domain.Money
	// FreeShippingThreshold waives the delivery fee once the subtotal reaches it. Zero disables the waiver.
	FreeShippingThreshold decimal.Decimal
}

func DefaultPolicy(unit currency.Unit) Policy {
	return Policy{
		DeliveryFee:           domain.NewMoney(DefaultDeliveryFee, unit),
		FreeShippingThreshold: decimal.NewFromInt(DefaultFreeShippingThreshold),
	}
}

func Subtotal(items []domain.CartItem, unit currency.Unit) domain.Money {
	total := domain.ZeroMoney(unit)
	for _, item := range items {
		total = total.Add(item.LineTotal())
	}
	return total
}

func (p Policy) ShippingFee(method domain.ShippingMethod, subtotal domain.Money) domain.Money {
	if method != domain.ShippingDelivery {
		return domain.ZeroMoney(p.DeliveryFee.Currency)
	}
	if p.FreeShippingThreshold.IsPositive() && subtotal.Amount.GreaterThanOrEqual(p.FreeShippingThreshold) {
		return domain.ZeroMoney(p.DeliveryFee.Currency)
	}
	return p.DeliveryFee
}

func (p Policy) OrderTotal(items []domain.CartItem, method domain.ShippingMethod) domain.Money {
	subtotal := Subtotal(items, p.DeliveryFee.Currency)
	return subtotal.Add(p.ShippingFee(method, subtotal))
}
