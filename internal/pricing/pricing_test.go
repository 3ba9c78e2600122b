package pricing_test

import (
	"testing"

	"github.com/nikolayk812/zini-storefront/internal/domain"
	"github.com/nikolayk812/zini-storefront/internal/pricing"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"golang.org/x/text/currency"
)

func TestSubtotal(t *testing.T) {
	items := []domain.CartItem{
		{Product: product("a", 19), Quantity: 2},
		{Product: product("b", 42), Quantity: 1},
	}

	got := pricing.Subtotal(items, currency.ZAR)
	assertAmount(t, 80, got)

	assertAmount(t, 0, pricing.Subtotal(nil, currency.ZAR))
}

func TestOrderTotal(t *testing.T) {
	policy := pricing.DefaultPolicy(currency.ZAR)

	tests := []struct {
		name   string
		items  []domain.CartItem
		method domain.ShippingMethod
		want   int64
	}{
		{
			name:   "pickup is free",
			items:  []domain.CartItem{{Product: product("a", 100), Quantity: 1}},
			method: domain.ShippingPickup,
			want:   100,
		},
		{
			name:   "delivery adds the fee",
			items:  []domain.CartItem{{Product: product("a", 100), Quantity: 1}},
			method: domain.ShippingDelivery,
			want:   199,
		},
		{
			name:   "delivery below threshold pays the fee",
			items:  []domain.CartItem{{Product: product("a", 999), Quantity: 1}},
			method: domain.ShippingDelivery,
			want:   1098,
		},
		{
			name:   "delivery at threshold is free",
			items:  []domain.CartItem{{Product: product("a", 500), Quantity: 2}},
			method: domain.ShippingDelivery,
			want:   1000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertAmount(t, tt.want, policy.OrderTotal(tt.items, tt.method))
		})
	}
}

func TestShippingFee_ThresholdDisabled(t *testing.T) {
	policy := pricing.Policy{
		DeliveryFee:           domain.NewMoney(99, currency.ZAR),
		FreeShippingThreshold: decimal.Zero,
	}

	fee := policy.ShippingFee(domain.ShippingDelivery, domain.NewMoney(5000, currency.ZAR))
	assertAmount(t, 99, fee)

	fee = policy.ShippingFee(domain.ShippingPickup, domain.NewMoney(5000, currency.ZAR))
	assertAmount(t, 0, fee)
}

func product(id string, price int64) domain.Product {
	return domain.KitProduct{
		ProductInfo: domain.ProductInfo{
			ID:    id,
			Name:  id,
			Price: domain.NewMoney(price, currency.ZAR),
		},
	}
}

func assertAmount(t *testing.T, want int64, got domain.Money) {
	t.Helper()
	assert.True(t, decimal.NewFromInt(want).Equal(got.Amount), "want %d, got %s", want, got.Amount)
	assert.Equal(t, currency.ZAR.String(), got.Currency.String())
}
