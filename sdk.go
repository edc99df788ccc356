package go_wcpay

import (
	"context"

	"github.com/ecomkit/go-wcpay/consts"
)

// SubmitResult is the outcome of validating and finalizing the
// wallet-collected payment details.
type SubmitResult struct {
	OK      bool
	Message string
}

// CredentialResult is the outcome of creating a payment credential.
// Exactly one credential is created per attempt; CredentialID is either
// a confirmation token or a payment method handle, both opaque.
type CredentialResult struct {
	OK           bool
	CredentialID string
	Message      string
}

// ElementsSession is the payment SDK boundary for a single attempt.
//
// The element rendering itself is owned by the external payment SDK;
// this interface only exposes the calls the confirmation flow needs.
// Results are explicit discriminated values rather than error-shaped
// duck typing.
type ElementsSession interface {
	Submit(ctx context.Context) SubmitResult
	CreateConfirmationToken(ctx context.Context) CredentialResult
	CreatePaymentMethod(ctx context.Context) CredentialResult
}

// ProbeRequest describes one capability probe: can this wallet method
// pay this amount in this currency, here and now.
type ProbeRequest struct {
	Method       consts.ExpressMethod
	Amount       int64
	CurrencyCode string
}

// Prober runs a throwaway, never-rendered instance of the payment
// element to answer a ProbeRequest. A load error means the method is
// unavailable, which is a normal outcome.
type Prober interface {
	Probe(ctx context.Context, req ProbeRequest) (bool, error)
}

// ProberFunc adapts a function to the Prober interface.
type ProberFunc func(ctx context.Context, req ProbeRequest) (bool, error)

func (f ProberFunc) Probe(ctx context.Context, req ProbeRequest) (bool, error) {
	return f(ctx, req)
}

// IntentConfirmer drives redirect-based step-up authentication for a
// parsed StepUpRequest. A nil error means the intent is authenticated
// and the payment may complete.
type IntentConfirmer interface {
	ConfirmIntent(ctx context.Context, req *StepUpRequest) error
}
