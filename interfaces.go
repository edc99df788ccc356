package go_wcpay

import "github.com/ecomkit/go-wcpay/log"

// WCPay is the main SDK interface.
type WCPay interface {
	Express() *ExpressCheckoutService
	Availability() *AvailabilityService
	Cart() *CartClient
	PayForOrder(orderID int64, orderKey string, billingEmail string) *OrderClient

	Transformer() Transformer

	SetLogLevel(level log.Level)
}

var _ WCPay = (*Client)(nil)
