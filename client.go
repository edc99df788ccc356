package go_wcpay

import (
	"errors"
	"fmt"
	"net/url"
	"path"

	"github.com/stremovskyy/recorder"

	"github.com/ecomkit/go-wcpay/consts"
	"github.com/ecomkit/go-wcpay/internal/httpclient"
	"github.com/ecomkit/go-wcpay/log"
)

// Client is the express checkout SDK client.
//
// It talks to the merchant's Store API (cart, checkout, orders) and
// orchestrates payment confirmation against an external payment SDK
// session. Store API requests carry the session nonce and cart token.
type Client struct {
	cfg config

	storeHTTP *httpclient.Client

	express      *ExpressCheckoutService
	availability *AvailabilityService
	cart         *CartClient
	transformer  Transformer
}

func NewClient(opts ...Option) (WCPay, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	if cfg.storeBaseURL == "" {
		return nil, errors.New("store base url is not configured; use WithStoreBaseURL(...)")
	}

	storeHeaders := map[string]string{}
	if cfg.nonce != "" {
		storeHeaders[consts.HeaderNonce] = cfg.nonce
	}
	if cfg.cartToken != "" {
		storeHeaders[consts.HeaderCartToken] = cfg.cartToken
	}

	c := &Client{cfg: cfg}
	c.storeHTTP = httpclient.New(cfg.httpClient, cfg.logger, cfg.retryAttempts, cfg.retryWait, storeHeaders, cfg.recorder, cfg.logBodies)

	c.transformer = Transformer{TargetDecimals: cfg.targetDecimals, PricesIncludeTax: cfg.pricesIncludeTax}
	c.express = &ExpressCheckoutService{c: c}
	c.availability = newAvailabilityService(c, cfg.prober)
	c.cart = &CartClient{c: c}
	return c, nil
}

// NewClientWithRecorder is a convenience constructor that attaches a recorder.
func NewClientWithRecorder(rec recorder.Recorder, opts ...Option) (WCPay, error) {
	opts = append([]Option{WithRecorder(rec)}, opts...)
	return NewClient(opts...)
}

func (c *Client) Express() *ExpressCheckoutService   { return c.express }
func (c *Client) Availability() *AvailabilityService { return c.availability }
func (c *Client) Cart() *CartClient                  { return c.cart }

// PayForOrder returns an order-backed API for the order-pay flow: a
// previously placed order is paid again, addresses pinned to the order.
func (c *Client) PayForOrder(orderID int64, orderKey string, billingEmail string) *OrderClient {
	return &OrderClient{c: c, orderID: orderID, orderKey: orderKey, billingEmail: billingEmail}
}

// Transformer returns the cart/wallet mapping configured for this client.
func (c *Client) Transformer() Transformer { return c.transformer }

// SetLogLevel updates SDK log level when current logger supports it.
func (c *Client) SetLogLevel(level log.Level) {
	if c == nil || c.cfg.logger == nil {
		return
	}
	if l, ok := c.cfg.logger.(interface{ SetLevel(log.Level) }); ok {
		l.SetLevel(level)
	}
}

func joinURL(base string, p string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid base url %q: %w", base, err)
	}
	u.Path = path.Join(u.Path, p)
	return u.String(), nil
}

func wrapAPIError(err error) error {
	if err == nil {
		return nil
	}
	var hs *httpclient.HTTPStatusError
	if errors.As(err, &hs) {
		return &APIError{StatusCode: hs.StatusCode, Body: hs.Body}
	}
	return err
}
