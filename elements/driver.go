// Package elements drives the Stripe side of an express checkout
// attempt: credential creation for the wallet-collected token and
// step-up intent confirmation when the backend demands it.
package elements

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/client"

	go_wcpay "github.com/ecomkit/go-wcpay"
)

type paymentIntentAPI interface {
	Get(id string, params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
	Confirm(id string, params *stripe.PaymentIntentConfirmParams) (*stripe.PaymentIntent, error)
}

type setupIntentAPI interface {
	Get(id string, params *stripe.SetupIntentParams) (*stripe.SetupIntent, error)
	Confirm(id string, params *stripe.SetupIntentConfirmParams) (*stripe.SetupIntent, error)
}

type paymentMethodAPI interface {
	New(params *stripe.PaymentMethodParams) (*stripe.PaymentMethod, error)
}

type clients struct {
	intents        paymentIntentAPI
	setupIntents   setupIntentAPI
	paymentMethods paymentMethodAPI
}

// DriverConfig configures the Driver.
type DriverConfig struct {
	APIKey    string
	AccountID string
	Backends  *stripe.Backends
	Clients   *clients
}

// Driver implements go_wcpay.IntentConfirmer on top of the Stripe API
// and hands out per-attempt sessions.
type Driver struct {
	api     clients
	account string
}

// NewDriver constructs a Driver using the given configuration.
func NewDriver(cfg DriverConfig) (*Driver, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" && cfg.Clients == nil {
		return nil, errors.New("elements: api key is required")
	}

	var api clients
	if cfg.Clients != nil {
		api = *cfg.Clients
	} else {
		sc := client.New(apiKey, cfg.Backends)
		api = clients{
			intents:        sc.PaymentIntents,
			setupIntents:   sc.SetupIntents,
			paymentMethods: sc.PaymentMethods,
		}
	}
	if api.intents == nil || api.setupIntents == nil || api.paymentMethods == nil {
		return nil, errors.New("elements: incomplete client configuration")
	}

	return &Driver{api: api, account: strings.TrimSpace(cfg.AccountID)}, nil
}

var _ go_wcpay.IntentConfirmer = (*Driver)(nil)

// ConfirmIntent resolves a step-up request: it loads the intent behind
// the client secret and drives it to an authenticated state. A nil
// return means the payment may complete.
func (d *Driver) ConfirmIntent(ctx context.Context, req *go_wcpay.StepUpRequest) error {
	if d == nil {
		return errors.New("elements: driver is nil")
	}
	if req == nil || req.ClientSecret == "" {
		return errors.New("elements: step-up request has no client secret")
	}

	id, err := intentIDFromSecret(req.ClientSecret)
	if err != nil {
		return err
	}

	if req.IsSetupIntent {
		return d.confirmSetupIntent(ctx, id, req.ClientSecret)
	}
	return d.confirmPaymentIntent(ctx, id, req.ClientSecret)
}

func (d *Driver) confirmPaymentIntent(ctx context.Context, id, clientSecret string) error {
	params := &stripe.PaymentIntentParams{ClientSecret: stripe.String(clientSecret)}
	params.Context = ctx
	pi, err := d.api.intents.Get(id, params)
	if err != nil {
		return fmt.Errorf("elements: retrieve payment intent: %s", stripeMessage(err))
	}

	if pi.Status == stripe.PaymentIntentStatusRequiresConfirmation {
		confirmParams := &stripe.PaymentIntentConfirmParams{}
		confirmParams.AddExtra("client_secret", clientSecret)
		confirmParams.Context = ctx
		pi, err = d.api.intents.Confirm(id, confirmParams)
		if err != nil {
			return errors.New(stripeMessage(err))
		}
	}

	switch pi.Status {
	case stripe.PaymentIntentStatusSucceeded,
		stripe.PaymentIntentStatusProcessing,
		stripe.PaymentIntentStatusRequiresCapture:
		return nil
	case stripe.PaymentIntentStatusRequiresAction:
		return errors.New(go_wcpay.AdditionalActionMessage)
	default:
		if pi.LastPaymentError != nil && pi.LastPaymentError.Msg != "" {
			return errors.New(pi.LastPaymentError.Msg)
		}
		return errors.New(go_wcpay.GenericPaymentFailedMessage)
	}
}

func (d *Driver) confirmSetupIntent(ctx context.Context, id, clientSecret string) error {
	params := &stripe.SetupIntentParams{ClientSecret: stripe.String(clientSecret)}
	params.Context = ctx
	si, err := d.api.setupIntents.Get(id, params)
	if err != nil {
		return fmt.Errorf("elements: retrieve setup intent: %s", stripeMessage(err))
	}

	if si.Status == stripe.SetupIntentStatusRequiresConfirmation {
		confirmParams := &stripe.SetupIntentConfirmParams{}
		confirmParams.AddExtra("client_secret", clientSecret)
		confirmParams.Context = ctx
		si, err = d.api.setupIntents.Confirm(id, confirmParams)
		if err != nil {
			return errors.New(stripeMessage(err))
		}
	}

	switch si.Status {
	case stripe.SetupIntentStatusSucceeded, stripe.SetupIntentStatusProcessing:
		return nil
	case stripe.SetupIntentStatusRequiresAction:
		return errors.New(go_wcpay.AdditionalActionMessage)
	default:
		if si.LastSetupError != nil && si.LastSetupError.Msg != "" {
			return errors.New(si.LastSetupError.Msg)
		}
		return errors.New(go_wcpay.GenericPaymentFailedMessage)
	}
}

// intentIDFromSecret extracts the intent id from a client secret of the
// form "pi_xxx_secret_yyy" or "seti_xxx_secret_yyy".
func intentIDFromSecret(clientSecret string) (string, error) {
	id, _, found := strings.Cut(clientSecret, "_secret_")
	if !found || id == "" {
		return "", errors.New("elements: malformed client secret")
	}
	return id, nil
}

// stripeMessage prefers Stripe's user-presentable message over the raw
// error string.
func stripeMessage(err error) string {
	var se *stripe.Error
	if errors.As(err, &se) && se.Msg != "" {
		return se.Msg
	}
	if err == nil {
		return ""
	}
	return err.Error()
}
