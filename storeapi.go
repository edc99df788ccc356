package go_wcpay

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/ecomkit/go-wcpay/consts"
	"github.com/ecomkit/go-wcpay/internal/utils"
	"github.com/ecomkit/go-wcpay/store"
)

// OrderAPI is the facade the confirmation flow drives. The cart-backed
// implementation works on the live cart; the order-backed one pins a
// previously placed order. Callers cannot tell which one they hold.
type OrderAPI interface {
	UpdateCustomer(ctx context.Context, req *store.CustomerUpdate, runOpts ...RunOption) (*store.Cart, error)
	SelectShippingRate(ctx context.Context, req *store.ShippingRateSelection, runOpts ...RunOption) (*store.Cart, error)
	PlaceOrder(ctx context.Context, req *store.CheckoutRequest, runOpts ...RunOption) (*store.CheckoutResult, error)
}

// =========================
// Cart-backed Store API
// =========================

type CartClient struct{ c *Client }

var _ OrderAPI = (*CartClient)(nil)

// GetCart fetches the current cart snapshot.
func (s *CartClient) GetCart(ctx context.Context, runOpts ...RunOption) (*store.Cart, error) {
	if s == nil || s.c == nil {
		return nil, errors.New("client is nil")
	}
	full, err := joinURL(s.c.cfg.storeBaseURL, consts.CartPath)
	if err != nil {
		return nil, err
	}
	if shouldDryRun(runOpts, "GET", full, nil) {
		return nil, nil
	}
	var out store.Cart
	_, _, err = s.c.storeHTTP.DoJSON(ctx, "GET", full, nil, &out)
	if err != nil {
		return nil, wrapAPIError(err)
	}
	return &out, nil
}

// UpdateCustomer pushes new billing/shipping addresses and returns the
// recalculated cart.
func (s *CartClient) UpdateCustomer(ctx context.Context, req *store.CustomerUpdate, runOpts ...RunOption) (*store.Cart, error) {
	if s == nil || s.c == nil {
		return nil, errors.New("client is nil")
	}
	if req == nil {
		return nil, &ValidationError{Fields: []FieldError{{Field: "request", Message: "is nil"}}}
	}
	if err := validateCustomerUpdate(req); err != nil {
		return nil, err
	}

	full, err := joinURL(s.c.cfg.storeBaseURL, consts.CartUpdateCustomerPath)
	if err != nil {
		return nil, err
	}
	if shouldDryRun(runOpts, "POST", full, req) {
		return nil, nil
	}
	var out store.Cart
	_, _, err = s.c.storeHTTP.DoJSON(ctx, "POST", full, req, &out)
	if err != nil {
		return nil, wrapAPIError(err)
	}
	return &out, nil
}

// SelectShippingRate selects one rate within one package and returns the
// recalculated cart.
func (s *CartClient) SelectShippingRate(ctx context.Context, req *store.ShippingRateSelection, runOpts ...RunOption) (*store.Cart, error) {
	if s == nil || s.c == nil {
		return nil, errors.New("client is nil")
	}
	if req == nil {
		return nil, &ValidationError{Fields: []FieldError{{Field: "request", Message: "is nil"}}}
	}
	if err := validateShippingRateSelection(req); err != nil {
		return nil, err
	}

	full, err := joinURL(s.c.cfg.storeBaseURL, consts.CartSelectShippingRatePath)
	if err != nil {
		return nil, err
	}
	if shouldDryRun(runOpts, "POST", full, req) {
		return nil, nil
	}
	var out store.Cart
	_, _, err = s.c.storeHTTP.DoJSON(ctx, "POST", full, req, &out)
	if err != nil {
		return nil, wrapAPIError(err)
	}
	return &out, nil
}

// PlaceOrder converts the cart into an order and starts the payment.
func (s *CartClient) PlaceOrder(ctx context.Context, req *store.CheckoutRequest, runOpts ...RunOption) (*store.CheckoutResult, error) {
	if s == nil || s.c == nil {
		return nil, errors.New("client is nil")
	}
	if req == nil {
		return nil, &ValidationError{Fields: []FieldError{{Field: "request", Message: "is nil"}}}
	}
	if err := validateCheckoutRequest(req); err != nil {
		return nil, err
	}

	full, err := joinURL(s.c.cfg.storeBaseURL, consts.CheckoutPath)
	if err != nil {
		return nil, err
	}
	if shouldDryRun(runOpts, "POST", full, req) {
		return nil, nil
	}
	var out store.CheckoutResult
	_, _, err = s.c.storeHTTP.DoJSON(ctx, "POST", full, req, &out)
	if err != nil {
		return nil, wrapAPIError(err)
	}
	return &out, nil
}

// =========================
// Order-backed Store API
// =========================

// OrderClient implements OrderAPI against an existing order (the
// order-pay flow). The order's addresses are authoritative: address and
// rate mutations are absorbed and placement always resubmits the
// addresses the order was fetched with.
type OrderClient struct {
	c *Client

	orderID      int64
	orderKey     string
	billingEmail string

	mu             sync.Mutex
	cachedBilling  *store.Address
	cachedShipping *store.Address
}

var _ OrderAPI = (*OrderClient)(nil)

// GetOrder fetches the order snapshot and caches its addresses.
func (s *OrderClient) GetOrder(ctx context.Context, runOpts ...RunOption) (*store.Cart, error) {
	if s == nil || s.c == nil {
		return nil, errors.New("client is nil")
	}
	if err := validateOrderRef(s); err != nil {
		return nil, err
	}

	full, err := s.orderURL(consts.OrderPathPrefix)
	if err != nil {
		return nil, err
	}
	if shouldDryRun(runOpts, "GET", full, nil) {
		return nil, nil
	}
	var out store.Cart
	_, _, err = s.c.storeHTTP.DoJSON(ctx, "GET", full, nil, &out)
	if err != nil {
		return nil, wrapAPIError(err)
	}

	s.mu.Lock()
	s.cachedBilling = utils.Ref(out.BillingAddress)
	s.cachedShipping = utils.Ref(out.ShippingAddress)
	s.mu.Unlock()
	return &out, nil
}

// UpdateCustomer is absorbed: the order's addresses cannot change, so
// the wallet's address churn is answered with a fresh order snapshot.
func (s *OrderClient) UpdateCustomer(ctx context.Context, _ *store.CustomerUpdate, runOpts ...RunOption) (*store.Cart, error) {
	return s.GetOrder(ctx, runOpts...)
}

// SelectShippingRate is absorbed the same way as UpdateCustomer.
func (s *OrderClient) SelectShippingRate(ctx context.Context, _ *store.ShippingRateSelection, runOpts ...RunOption) (*store.Cart, error) {
	return s.GetOrder(ctx, runOpts...)
}

// PlaceOrder pays the existing order. The payload addresses are replaced
// with the cached order addresses; whatever the wallet collected during
// this attempt never overrides what the order was placed with.
func (s *OrderClient) PlaceOrder(ctx context.Context, req *store.CheckoutRequest, runOpts ...RunOption) (*store.CheckoutResult, error) {
	if s == nil || s.c == nil {
		return nil, errors.New("client is nil")
	}
	if req == nil {
		return nil, &ValidationError{Fields: []FieldError{{Field: "request", Message: "is nil"}}}
	}
	if err := validateOrderRef(s); err != nil {
		return nil, err
	}
	if err := validateCheckoutRequest(req); err != nil {
		return nil, err
	}

	s.mu.Lock()
	billing, shipping := s.cachedBilling, s.cachedShipping
	s.mu.Unlock()
	if billing == nil {
		if _, err := s.GetOrder(ctx, runOpts...); err != nil {
			return nil, err
		}
		s.mu.Lock()
		billing, shipping = s.cachedBilling, s.cachedShipping
		s.mu.Unlock()
	}

	pinned := *req
	if billing != nil {
		pinned.BillingAddress = *billing
	}
	if shipping != nil {
		addr := *shipping
		pinned.ShippingAddress = &addr
	}

	full, err := s.orderURL(consts.CheckoutOrderPathPrefix)
	if err != nil {
		return nil, err
	}
	if shouldDryRun(runOpts, "POST", full, &pinned) {
		return nil, nil
	}
	var out store.CheckoutResult
	_, _, err = s.c.storeHTTP.DoJSON(ctx, "POST", full, &pinned, &out)
	if err != nil {
		return nil, wrapAPIError(err)
	}
	return &out, nil
}

func (s *OrderClient) orderURL(prefix string) (string, error) {
	full, err := joinURL(s.c.cfg.storeBaseURL, fmt.Sprintf("%s/%d", prefix, s.orderID))
	if err != nil {
		return "", err
	}
	q := url.Values{}
	q.Set("key", s.orderKey)
	if s.billingEmail != "" {
		q.Set("billing_email", s.billingEmail)
	}
	return full + "?" + q.Encode(), nil
}

// =========================
// Validation
// =========================

func validateOrderRef(s *OrderClient) error {
	ve := &ValidationError{}
	if s.orderID <= 0 {
		ve.Add("order_id", "must be > 0")
	}
	if strings.TrimSpace(s.orderKey) == "" {
		ve.Add("order_key", "is required")
	}
	if ve.HasErrors() {
		return ve
	}
	return nil
}

func validateCustomerUpdate(req *store.CustomerUpdate) error {
	ve := &ValidationError{}
	if req.BillingAddress == nil && req.ShippingAddress == nil {
		ve.Add("request", "must set billing_address or shipping_address")
	}
	if req.ShippingAddress != nil && req.ShippingAddress.Country == "" {
		ve.Add("shipping_address.country", "is required")
	}
	if ve.HasErrors() {
		return ve
	}
	return nil
}

func validateShippingRateSelection(req *store.ShippingRateSelection) error {
	ve := &ValidationError{}
	if req.RateID == "" {
		ve.Add("rate_id", "is required")
	}
	if ve.HasErrors() {
		return ve
	}
	return nil
}

func validateCheckoutRequest(req *store.CheckoutRequest) error {
	ve := &ValidationError{}
	if req.PaymentMethod == "" {
		ve.Add("payment_method", "is required")
	}
	if req.BillingAddress.LastName == "" {
		ve.Add("billing_address.last_name", "is required")
	}
	if len(req.PaymentData) == 0 {
		ve.Add("payment_data", "must not be empty")
	}
	for i, d := range req.PaymentData {
		if d.Key == "" {
			ve.Add(fmt.Sprintf("payment_data[%d].key", i), "is required")
		}
	}
	if ve.HasErrors() {
		return ve
	}
	return nil
}
