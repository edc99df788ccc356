package consts

// PaymentStatus is the backend's verdict on an order placement attempt.
//
// A 200-level response can still carry a non-success status.
type PaymentStatus string

const (
	PaymentStatusSuccess PaymentStatus = "success"
	PaymentStatusFailure PaymentStatus = "failure"
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusError   PaymentStatus = "error"
)

// ExpressMethod names a wallet payment method as the payment SDK knows it.
type ExpressMethod string

const (
	MethodApplePay  ExpressMethod = "applePay"
	MethodGooglePay ExpressMethod = "googlePay"
	MethodLink      ExpressMethod = "link"
	MethodAmazonPay ExpressMethod = "amazonPay"
)

// ExpressPaymentType is the value sent under the express_payment_type
// payment_data key when the order is placed.
type ExpressPaymentType string

const (
	ExpressTypeApplePay       ExpressPaymentType = "apple_pay"
	ExpressTypeGooglePay      ExpressPaymentType = "google_pay"
	ExpressTypeLink           ExpressPaymentType = "link"
	ExpressTypeAmazonPay      ExpressPaymentType = "amazon_pay"
	ExpressTypePaymentRequest ExpressPaymentType = "payment_request_api"
)
