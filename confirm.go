package go_wcpay

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/ecomkit/go-wcpay/consts"
	"github.com/ecomkit/go-wcpay/internal/jsonutil"
	"github.com/ecomkit/go-wcpay/store"
	"github.com/ecomkit/go-wcpay/wallet"
)

// ExpressCheckoutService orchestrates one express payment confirmation:
// wallet submission, credential creation, order placement and, when the
// backend demands it, step-up authentication.
type ExpressCheckoutService struct{ c *Client }

// ConfirmRequest carries everything one confirmation attempt needs.
type ConfirmRequest struct {
	// API is the store facade, cart-backed or order-backed.
	API OrderAPI
	// Session is the live payment SDK session the wallet gesture opened.
	Session ElementsSession
	// Event is the wallet sheet submission.
	Event *wallet.PaymentEvent

	FraudPreventionToken string
	CustomerNote         string
}

// ConfirmResult is a completed payment. RedirectURL is where the shopper
// lands next, always with any step-up fragment already stripped.
type ConfirmResult struct {
	RedirectURL    string
	CheckoutResult *store.CheckoutResult
}

// Confirm runs a full confirmation attempt. Failures at any stage come
// back as a *PaymentError with a shopper-presentable message; the caller
// can simply start a new attempt.
//
// The attempt is strictly ordered: the wallet submission is finalized
// first, then exactly one credential is created, then the order is
// placed, then any step-up redirect is confirmed.
func (s *ExpressCheckoutService) Confirm(ctx context.Context, req *ConfirmRequest, runOpts ...RunOption) (*ConfirmResult, error) {
	if s == nil || s.c == nil {
		return nil, errors.New("client is nil")
	}
	if req == nil {
		return nil, &ValidationError{Fields: []FieldError{{Field: "request", Message: "is nil"}}}
	}
	if err := validateConfirmRequest(req); err != nil {
		return nil, err
	}

	if sub := req.Session.Submit(ctx); !sub.OK {
		msg := sub.Message
		if msg == "" {
			msg = GenericPaymentFailedMessage
		}
		return nil, &PaymentError{Stage: StageSubmit, Message: msg}
	}

	var cred CredentialResult
	switch s.c.cfg.credentialMode {
	case CredentialConfirmationToken:
		cred = req.Session.CreateConfirmationToken(ctx)
	default:
		cred = req.Session.CreatePaymentMethod(ctx)
	}
	if !cred.OK || cred.CredentialID == "" {
		msg := cred.Message
		if msg == "" {
			msg = GenericPaymentFailedMessage
		}
		return nil, &PaymentError{Stage: StageCredential, Message: msg}
	}

	checkoutReq, err := s.buildCheckoutRequest(req, cred.CredentialID)
	if err != nil {
		return nil, err
	}

	result, err := req.API.PlaceOrder(ctx, checkoutReq, runOpts...)
	if err != nil {
		return nil, placeOrderError(err)
	}
	if result == nil {
		// Dry run.
		return &ConfirmResult{}, nil
	}

	if result.PaymentResult.PaymentStatus != consts.PaymentStatusSuccess {
		msg, ok := result.PaymentResult.Detail(consts.DetailErrorMessage)
		if !ok || msg == "" {
			msg = GenericPaymentFailedMessage
		}
		return nil, &PaymentError{Stage: StagePlaceOrder, Message: msg}
	}

	redirectURL := result.PaymentResult.RedirectURL
	if redirectURL == "" {
		// Some backends deliver the redirect as a payment detail instead.
		redirectURL, _ = result.PaymentResult.Detail(consts.DetailRedirect)
	}

	if stepUp := ParseRedirect(redirectURL); stepUp != nil {
		if s.c.cfg.confirmer == nil {
			return nil, &PaymentError{Stage: StageConfirm, Message: AdditionalActionMessage, Err: errors.New("intent confirmer is not configured; use WithIntentConfirmer(...)")}
		}
		if err := s.c.cfg.confirmer.ConfirmIntent(ctx, stepUp); err != nil {
			return nil, &PaymentError{Stage: StageConfirm, Message: confirmMessage(err), Err: err}
		}
		redirectURL = stripConfirmFragment(redirectURL)
	}

	s.c.cfg.logger.Infof("[WCPay] payment confirmed: order_id=%d status=%s", result.OrderID, result.Status)
	return &ConfirmResult{RedirectURL: redirectURL, CheckoutResult: result}, nil
}

func (s *ExpressCheckoutService) buildCheckoutRequest(req *ConfirmRequest, credentialID string) (*store.CheckoutRequest, error) {
	t := s.c.transformer
	event := req.Event

	methodTypes, err := jsonutil.Marshal(s.c.cfg.methodTypes)
	if err != nil {
		return nil, err
	}

	out := &store.CheckoutRequest{
		BillingAddress: t.BillingAddressForStore(event.BillingDetails),
		CustomerNote:   req.CustomerNote,
		PaymentMethod:  s.c.cfg.gatewayID,
		PaymentData: []store.PaymentDataEntry{
			{Key: consts.KeyPaymentMethod, Value: s.c.cfg.gatewayID},
			{Key: consts.KeyFraudPreventionToken, Value: req.FraudPreventionToken},
			{Key: s.c.cfg.credentialMode.PaymentDataKey(), Value: credentialID},
			{Key: consts.KeyExpressPaymentType, Value: string(event.ExpressPaymentType)},
			{Key: consts.KeyExpressMethodTypes, Value: string(methodTypes)},
		},
	}
	if event.ShippingAddress != nil {
		addr := t.ShippingAddressForStore(event.ShippingAddress.Name, event.ShippingAddress.Address)
		out.ShippingAddress = &addr
	}
	return out, nil
}

// placeOrderError folds an order placement failure into a PaymentError.
// Structured rejection bodies yield their own message; bare transport
// failures fall back to a generic connection message.
func placeOrderError(err error) error {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		var body store.ErrorResponse
		if jsonErr := json.Unmarshal(apiErr.Body, &body); jsonErr == nil {
			if body.Message != "" {
				return &PaymentError{Stage: StagePlaceOrder, Message: body.Message, Err: err}
			}
			if body.Data.PaymentResult != nil {
				if msg, ok := body.Data.PaymentResult.Detail(consts.DetailErrorMessage); ok && msg != "" {
					return &PaymentError{Stage: StagePlaceOrder, Message: msg, Err: err}
				}
			}
		}
		return &PaymentError{Stage: StagePlaceOrder, Message: GenericPaymentFailedMessage, Err: err}
	}
	if IsValidationError(err) {
		return err
	}
	msg := GenericConnectionMessage
	if err != nil && err.Error() != "" {
		msg = err.Error()
	}
	return &PaymentError{Stage: StagePlaceOrder, Message: msg, Err: err}
}

func confirmMessage(err error) string {
	if err == nil || err.Error() == "" {
		return AdditionalActionMessage
	}
	return err.Error()
}

func validateConfirmRequest(req *ConfirmRequest) error {
	ve := &ValidationError{}
	if req.API == nil {
		ve.Add("api", "is required")
	}
	if req.Session == nil {
		ve.Add("session", "is required")
	}
	if req.Event == nil {
		ve.Add("event", "is required")
	}
	if ve.HasErrors() {
		return ve
	}
	return nil
}

// =========================
// Wallet sheet callbacks
// =========================

// Attempt is the mutable state of one wallet sheet interaction: the
// address the shopper last picked inside the sheet, scoped to this
// attempt rather than shared process-wide.
type Attempt struct {
	api OrderAPI

	mu                  sync.Mutex
	lastSelectedAddress *store.Address
}

// NewAttempt starts a wallet sheet interaction against api.
func NewAttempt(api OrderAPI) *Attempt {
	return &Attempt{api: api}
}

// LastSelectedAddress is the shipping address the shopper last chose in
// the wallet sheet, or nil if none was chosen yet.
func (a *Attempt) LastSelectedAddress() *store.Address {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.lastSelectedAddress == nil {
		return nil
	}
	addr := *a.lastSelectedAddress
	return &addr
}

// OnShippingAddressChange pushes a wallet-selected shipping address to
// the store and returns the recalculated sheet contents.
//
// Wallets redact street-level fields at this stage, so only the partial
// address travels; the full address arrives with the final submission.
func (s *ExpressCheckoutService) OnShippingAddressChange(ctx context.Context, attempt *Attempt, name string, addr wallet.Address, runOpts ...RunOption) (*wallet.SheetUpdate, error) {
	if s == nil || s.c == nil {
		return nil, errors.New("client is nil")
	}
	if attempt == nil || attempt.api == nil {
		return nil, &ValidationError{Fields: []FieldError{{Field: "attempt", Message: "is nil"}}}
	}

	storeAddr := s.c.transformer.ShippingAddressForStore(name, addr)
	attempt.mu.Lock()
	attempt.lastSelectedAddress = &storeAddr
	attempt.mu.Unlock()

	cart, err := attempt.api.UpdateCustomer(ctx, &store.CustomerUpdate{ShippingAddress: &storeAddr}, runOpts...)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, nil
	}
	return s.sheetUpdate(cart), nil
}

// OnShippingRateChange selects a wallet-chosen shipping rate and returns
// the recalculated sheet contents.
func (s *ExpressCheckoutService) OnShippingRateChange(ctx context.Context, attempt *Attempt, sel *store.ShippingRateSelection, runOpts ...RunOption) (*wallet.SheetUpdate, error) {
	if s == nil || s.c == nil {
		return nil, errors.New("client is nil")
	}
	if attempt == nil || attempt.api == nil {
		return nil, &ValidationError{Fields: []FieldError{{Field: "attempt", Message: "is nil"}}}
	}
	if sel == nil {
		return nil, &ValidationError{Fields: []FieldError{{Field: "selection", Message: "is nil"}}}
	}

	cart, err := attempt.api.SelectShippingRate(ctx, sel, runOpts...)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, nil
	}
	return s.sheetUpdate(cart), nil
}

func (s *ExpressCheckoutService) sheetUpdate(cart *store.Cart) *wallet.SheetUpdate {
	t := s.c.transformer
	return &wallet.SheetUpdate{
		Total:           t.Total(cart),
		CurrencyCode:    cart.Totals.CurrencyCode,
		LineItems:       t.DisplayItems(cart),
		ShippingOptions: t.ShippingOptions(cart),
	}
}
