package domain

import "math"

// MaxQuantity keeps a line quantity within a Postgres INTEGER column.
const MaxQuantity = math.MaxInt32

type CartItem struct {
	Product  Product
	Quantity int
}

func (i CartItem) ProductID() string {
	if i.Product == nil {
		return ""
	}
	return i.Product.Info().ID
}

func (i CartItem) LineTotal() Money {
	return i.Product.Info().Price.Times(i.Quantity)
}
