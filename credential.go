package go_wcpay

import "github.com/ecomkit/go-wcpay/consts"

// CredentialMode selects which credential type a confirmation attempt
// creates. It is resolved once at client construction and never
// re-checked mid-flight; exactly one credential is created per attempt.
type CredentialMode int

const (
	// CredentialPaymentMethod creates a reusable payment method handle.
	CredentialPaymentMethod CredentialMode = iota
	// CredentialConfirmationToken creates a single-use confirmation token.
	CredentialConfirmationToken
)

func (m CredentialMode) String() string {
	if m == CredentialConfirmationToken {
		return "confirmation_token"
	}
	return "payment_method"
}

// PaymentDataKey is the payment_data key the credential travels under.
func (m CredentialMode) PaymentDataKey() string {
	if m == CredentialConfirmationToken {
		return consts.KeyConfirmationToken
	}
	return consts.KeyPaymentMethodID
}
