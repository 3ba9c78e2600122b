package domain

import "time"

type ShippingMethod string

const (
	ShippingPickup   ShippingMethod = "pickup"
	ShippingDelivery ShippingMethod = "delivery"
)

func (m ShippingMethod) Valid() bool {
	return m == ShippingPickup || m == ShippingDelivery
}

type PaymentMethod string

const (
	PaymentCreditCard PaymentMethod = "credit-card"
	PaymentEFT        PaymentMethod = "eft"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentCreditCard || m == PaymentEFT
}

type Contact struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

type Address struct {
	Address    string `json:"address"`
	City       string `json:"city"`
	Province   string `json:"province"`
	PostalCode string `json:"postalCode"`
}

type CheckoutForm struct {
	Contact        Contact        `json:"contact"`
	ShippingMethod ShippingMethod `json:"shippingMethod"`
	Address        Address        `json:"address"`
	PaymentMethod  PaymentMethod  `json:"paymentMethod"`
}

// Order is never persisted; it only backs the confirmation view.
type Order struct {
	Reference string
	Items     []CartItem
	Form      CheckoutForm
	Subtotal  Money
	Shipping  Money
	Total     Money
	PlacedAt  time.Time
}
