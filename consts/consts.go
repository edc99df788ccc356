package consts

const (
	HeaderNonce       = "Nonce"
	HeaderCartToken   = "Cart-Token"
	HeaderAccept      = "Accept"
	HeaderContentType = "Content-Type"

	ContentTypeJSON = "application/json"
)

// Store API endpoint paths.
const (
	CartPath                   = "/wc/store/v1/cart"
	CartUpdateCustomerPath     = "/wc/store/v1/cart/update-customer"
	CartSelectShippingRatePath = "/wc/store/v1/cart/select-shipping-rate"
	CheckoutPath               = "/wc/store/v1/checkout"

	// Pay-for-order endpoints take the order id as the last path segment.
	OrderPathPrefix         = "/wc/store/v1/order"
	CheckoutOrderPathPrefix = "/wc/store/v1/checkout"
)

// GatewayID is the payment gateway the checkout payload is routed to.
const GatewayID = "woocommerce_payments"

// payment_data keys the order placement payload must carry.
const (
	KeyPaymentMethod        = "payment_method"
	KeyFraudPreventionToken = "wcpay-fraud-prevention-token"
	KeyConfirmationToken    = "wcpay-confirmation-token"
	KeyPaymentMethodID      = "wcpay-payment-method"
	KeyExpressPaymentType   = "express_payment_type"
	KeyExpressMethodTypes   = "wcpay-express-payment-method-types"
)

// payment_details keys read back from the order placement result.
const (
	DetailErrorMessage = "errorMessage"
	DetailRedirect     = "redirect"
)

// ConfirmFragmentPrefix starts the synthetic step-up redirect fragment.
const ConfirmFragmentPrefix = "#wcpay-confirm-"

// MaxShippingRates caps the shipping options shown in a wallet sheet.
const MaxShippingRates = 9

// DefaultCurrencyDecimals is the minor-unit precision the payment SDK
// expects unless overridden for zero-decimal currencies.
const DefaultCurrencyDecimals = 2
