package wallet

import "github.com/ecomkit/go-wcpay/consts"

// DisplayItem is one line shown in the wallet sheet, in wallet minor units.
// Derived, never persisted.
type DisplayItem struct {
	Name   string `json:"name"`
	Amount int64  `json:"amount"`
}

// ShippingOption is a shipping rate as presented in the wallet sheet.
type ShippingOption struct {
	ID               string `json:"id"`
	DisplayName      string `json:"displayName"`
	Amount           int64  `json:"amount"`
	DeliveryEstimate string `json:"deliveryEstimate,omitempty"`
}

// Address is the wallet's structured address shape.
type Address struct {
	Organization string `json:"organization,omitempty"`
	Line1        string `json:"line1"`
	Line2        string `json:"line2,omitempty"`
	City         string `json:"city"`
	State        string `json:"state"`
	PostalCode   string `json:"postal_code"`
	Country      string `json:"country"`
}

// BillingDetails is the payer information the wallet collected.
type BillingDetails struct {
	Name    string  `json:"name"`
	Email   string  `json:"email,omitempty"`
	Phone   string  `json:"phone,omitempty"`
	Address Address `json:"address"`
}

// ShippingContact pairs a free-text recipient name with an address.
type ShippingContact struct {
	Name    string  `json:"name"`
	Address Address `json:"address"`
}

// PaymentEvent is the wallet sheet submission: everything the shopper
// confirmed inside the wallet UI.
type PaymentEvent struct {
	BillingDetails     BillingDetails            `json:"billing_details"`
	ShippingAddress    *ShippingContact          `json:"shipping_address,omitempty"`
	ExpressPaymentType consts.ExpressPaymentType `json:"express_payment_type"`
}

// SheetUpdate is pushed back into the wallet sheet after an address or
// shipping rate change recalculated the cart.
type SheetUpdate struct {
	Total           int64            `json:"total"`
	CurrencyCode    string           `json:"currency_code"`
	LineItems       []DisplayItem    `json:"line_items"`
	ShippingOptions []ShippingOption `json:"shipping_options,omitempty"`
}
