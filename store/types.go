package store

import "github.com/ecomkit/go-wcpay/consts"

// Cart is the snapshot the store backend returns for the live cart or,
// in the pay-for-order flow, for a single existing order.
//
// Snapshots are immutable: the SDK never mutates one, it requests a new
// one through the facade.
type Cart struct {
	Items           []Item            `json:"items"`
	ShippingRates   []ShippingPackage `json:"shipping_rates,omitempty"`
	NeedsShipping   bool              `json:"needs_shipping"`
	BillingAddress  Address           `json:"billing_address"`
	ShippingAddress Address           `json:"shipping_address"`
	Totals          Totals            `json:"totals"`
}

// Item is a single cart line.
type Item struct {
	Key       string               `json:"key"`
	ID        int64                `json:"id"`
	Name      string               `json:"name"`
	Quantity  int64                `json:"quantity"`
	Variation []VariationAttribute `json:"variation,omitempty"`
	Totals    ItemTotals           `json:"totals"`
}

type VariationAttribute struct {
	Attribute string `json:"attribute"`
	Value     string `json:"value"`
}

// ItemTotals carries per-line amounts in the store's minor units.
// The backend serializes monetary values as numeric strings.
type ItemTotals struct {
	LineSubtotal    int64 `json:"line_subtotal,string"`
	LineSubtotalTax int64 `json:"line_subtotal_tax,string"`
	LineTotal       int64 `json:"line_total,string"`
	LineTotalTax    int64 `json:"line_total_tax,string"`
}

// ShippingPackage groups the rate options for one shipment.
type ShippingPackage struct {
	PackageID     int64          `json:"package_id"`
	Name          string         `json:"name,omitempty"`
	ShippingRates []ShippingRate `json:"shipping_rates"`
}

type ShippingRate struct {
	RateID   string      `json:"rate_id"`
	Name     string      `json:"name"`
	Price    int64       `json:"price,string"`
	Taxes    int64       `json:"taxes,string"`
	Selected bool        `json:"selected"`
	MetaData []MetaDatum `json:"meta_data,omitempty"`
}

// MetaDatum is a key/value attached to a shipping rate (pickup address,
// pickup details and similar).
type MetaDatum struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Totals are the cart-level aggregates in the store's minor units.
type Totals struct {
	CurrencyCode      string `json:"currency_code"`
	CurrencyMinorUnit int    `json:"currency_minor_unit"`
	TotalItems        int64  `json:"total_items,string"`
	TotalFees         int64  `json:"total_fees,string"`
	TotalDiscount     int64  `json:"total_discount,string"`
	TotalShipping     int64  `json:"total_shipping,string"`
	TotalShippingTax  int64  `json:"total_shipping_tax,string"`
	TotalTax          int64  `json:"total_tax,string"`
	TotalRefund       int64  `json:"total_refund,string"`
	TotalPrice        int64  `json:"total_price,string"`
}

// Address is the store's address schema, shared by billing and shipping.
type Address struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Company   string `json:"company"`
	Address1  string `json:"address_1"`
	Address2  string `json:"address_2"`
	City      string `json:"city"`
	State     string `json:"state"`
	Postcode  string `json:"postcode"`
	Country   string `json:"country"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// CustomerUpdate is the partial payload for "update customer".
// Nil fields are left untouched by the backend.
type CustomerUpdate struct {
	BillingAddress  *Address `json:"billing_address,omitempty"`
	ShippingAddress *Address `json:"shipping_address,omitempty"`
}

// ShippingRateSelection selects one rate within one package.
type ShippingRateSelection struct {
	PackageID int64  `json:"package_id"`
	RateID    string `json:"rate_id"`
}

// CheckoutRequest is the order placement payload.
type CheckoutRequest struct {
	BillingAddress  Address            `json:"billing_address"`
	ShippingAddress *Address           `json:"shipping_address,omitempty"`
	CustomerNote    string             `json:"customer_note,omitempty"`
	PaymentMethod   string             `json:"payment_method"`
	PaymentData     []PaymentDataEntry `json:"payment_data"`
}

type PaymentDataEntry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// CheckoutResult is the order placement response.
type CheckoutResult struct {
	OrderID       int64         `json:"order_id"`
	Status        string        `json:"status"`
	PaymentResult PaymentResult `json:"payment_result"`
}

type PaymentResult struct {
	PaymentStatus  consts.PaymentStatus `json:"payment_status"`
	RedirectURL    string               `json:"redirect_url"`
	PaymentDetails []PaymentDataEntry   `json:"payment_details,omitempty"`
}

// Detail returns the payment_details value stored under key.
func (r *PaymentResult) Detail(key string) (string, bool) {
	if r == nil {
		return "", false
	}
	for _, d := range r.PaymentDetails {
		if d.Key == key {
			return d.Value, true
		}
	}
	return "", false
}

// ErrorResponse is the structured body of a non-2xx checkout rejection.
type ErrorResponse struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
	Data    struct {
		Status        int            `json:"status,omitempty"`
		PaymentResult *PaymentResult `json:"payment_result,omitempty"`
	} `json:"data,omitempty"`
}
