package elements

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v78"

	go_wcpay "github.com/ecomkit/go-wcpay"
)

// SessionConfig carries the wallet-collected material for one attempt.
type SessionConfig struct {
	// WalletToken is the tokenized card the wallet handed over
	// (Apple Pay / Google Pay token exchange result).
	WalletToken string
	// ConfirmationToken is set instead of WalletToken when the wallet
	// integration already produced a confirmation token.
	ConfirmationToken string

	BillingName  string
	BillingEmail string
}

// Session is a per-attempt go_wcpay.ElementsSession backed by the Stripe API.
// Create one per wallet gesture; it is not reusable across attempts.
type Session struct {
	d   *Driver
	cfg SessionConfig
}

// NewSession opens a session for a single confirmation attempt.
func (d *Driver) NewSession(cfg SessionConfig) *Session {
	return &Session{d: d, cfg: cfg}
}

var _ go_wcpay.ElementsSession = (*Session)(nil)

// Submit finalizes the wallet-collected details. There is nothing to
// send yet; it only verifies the session holds credential material.
func (s *Session) Submit(ctx context.Context) go_wcpay.SubmitResult {
	if s == nil || s.d == nil {
		return go_wcpay.SubmitResult{Message: "payment session is not initialized"}
	}
	if strings.TrimSpace(s.cfg.WalletToken) == "" && strings.TrimSpace(s.cfg.ConfirmationToken) == "" {
		return go_wcpay.SubmitResult{Message: "wallet did not provide payment details"}
	}
	return go_wcpay.SubmitResult{OK: true}
}

// CreateConfirmationToken hands back the wallet-produced confirmation
// token. The token is single-use; the backend consumes it during order
// placement.
func (s *Session) CreateConfirmationToken(ctx context.Context) go_wcpay.CredentialResult {
	if s == nil {
		return go_wcpay.CredentialResult{Message: "payment session is not initialized"}
	}
	token := strings.TrimSpace(s.cfg.ConfirmationToken)
	if token == "" {
		return go_wcpay.CredentialResult{Message: "wallet did not provide a confirmation token"}
	}
	return go_wcpay.CredentialResult{OK: true, CredentialID: token}
}

// CreatePaymentMethod exchanges the wallet token for a payment method
// handle via the Stripe API.
func (s *Session) CreatePaymentMethod(ctx context.Context) go_wcpay.CredentialResult {
	if s == nil || s.d == nil {
		return go_wcpay.CredentialResult{Message: "payment session is not initialized"}
	}
	token := strings.TrimSpace(s.cfg.WalletToken)
	if token == "" {
		return go_wcpay.CredentialResult{Message: "wallet did not provide a payment token"}
	}

	params := &stripe.PaymentMethodParams{
		Type: stripe.String(string(stripe.PaymentMethodTypeCard)),
		Card: &stripe.PaymentMethodCardParams{Token: stripe.String(token)},
	}
	params.Context = ctx
	params.SetIdempotencyKey(uuid.NewString())
	if s.cfg.BillingName != "" || s.cfg.BillingEmail != "" {
		params.BillingDetails = &stripe.PaymentMethodBillingDetailsParams{}
		if s.cfg.BillingName != "" {
			params.BillingDetails.Name = stripe.String(s.cfg.BillingName)
		}
		if s.cfg.BillingEmail != "" {
			params.BillingDetails.Email = stripe.String(s.cfg.BillingEmail)
		}
	}

	pm, err := s.d.api.paymentMethods.New(params)
	if err != nil {
		return go_wcpay.CredentialResult{Message: stripeMessage(err)}
	}
	return go_wcpay.CredentialResult{OK: true, CredentialID: pm.ID}
}
