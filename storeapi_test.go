package go_wcpay

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/ecomkit/go-wcpay/store"
)

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	c, err := NewClient(WithStoreBaseURL(baseURL))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return c.(*Client)
}

func TestCartClientUpdateCustomer(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/wc/store/v1/cart/update-customer" {
			http.NotFound(w, r)
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			return
		}
		body, _ := io.ReadAll(r.Body)
		var payload store.CustomerUpdate
		if err := json.Unmarshal(body, &payload); err != nil {
			http.Error(w, "bad payload", http.StatusBadRequest)
			t.Errorf("decode payload: %v", err)
			return
		}
		if payload.ShippingAddress == nil || payload.ShippingAddress.City != "London" {
			http.Error(w, "bad address", http.StatusBadRequest)
			t.Errorf("unexpected shipping address: %+v", payload.ShippingAddress)
			return
		}
		_, _ = w.Write([]byte(cartBody))
	}))
	defer ts.Close()

	client := newTestClient(t, ts.URL)
	cart, err := client.Cart().UpdateCustomer(context.Background(), &store.CustomerUpdate{
		ShippingAddress: &store.Address{City: "London", Country: "GB"},
	})
	if err != nil {
		t.Fatalf("update customer: %v", err)
	}
	if cart.Totals.TotalPrice != 1500 {
		t.Fatalf("unexpected cart total: %d", cart.Totals.TotalPrice)
	}
}

func TestCartClientUpdateCustomerValidation(t *testing.T) {
	client := newTestClient(t, "https://shop.example.com")

	_, err := client.Cart().UpdateCustomer(context.Background(), &store.CustomerUpdate{})
	if !IsValidationError(err) {
		t.Fatalf("expected validation error for empty update, got %v", err)
	}

	_, err = client.Cart().UpdateCustomer(context.Background(), &store.CustomerUpdate{
		ShippingAddress: &store.Address{City: "London"},
	})
	if !IsValidationError(err) {
		t.Fatalf("expected validation error for missing country, got %v", err)
	}
}

func TestCartClientPlaceOrderWrapsAPIError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"code":"woocommerce_rest_checkout_error","message":"Card declined."}`, http.StatusBadRequest)
	}))
	defer ts.Close()

	client := newTestClient(t, ts.URL)
	_, err := client.Cart().PlaceOrder(context.Background(), &store.CheckoutRequest{
		BillingAddress: store.Address{LastName: "Doe"},
		PaymentMethod:  "woocommerce_payments",
		PaymentData:    []store.PaymentDataEntry{{Key: "payment_method", Value: "woocommerce_payments"}},
	})

	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("expected *APIError, got %T (%v)", err, err)
	}
	if apiErr.StatusCode != http.StatusBadRequest {
		t.Fatalf("unexpected status: %d", apiErr.StatusCode)
	}
}

const orderBody = `{
	"items": [],
	"needs_shipping": false,
	"billing_address": {"first_name": "Ada", "last_name": "Lovelace", "company": "", "address_1": "1 Order St", "address_2": "", "city": "York", "state": "", "postcode": "YO1", "country": "GB", "email": "ada@example.com"},
	"shipping_address": {"first_name": "Ada", "last_name": "Lovelace", "company": "", "address_1": "1 Order St", "address_2": "", "city": "York", "state": "", "postcode": "YO1", "country": "GB"},
	"totals": {"currency_code": "GBP", "currency_minor_unit": 2,
		"total_items": "900", "total_fees": "0", "total_discount": "0",
		"total_shipping": "0", "total_shipping_tax": "0", "total_tax": "0",
		"total_refund": "0", "total_price": "900"}
}`

func TestOrderClientPinsOrderAddresses(t *testing.T) {
	var placedBilling store.Address
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/wc/store/v1/order/77":
			if got := r.URL.Query().Get("key"); got != "wc_order_key" {
				http.Error(w, "bad key", http.StatusForbidden)
				t.Errorf("order fetch must carry key, got %q", got)
				return
			}
			if got := r.URL.Query().Get("billing_email"); got != "ada@example.com" {
				http.Error(w, "bad email", http.StatusForbidden)
				t.Errorf("order fetch must carry billing_email, got %q", got)
				return
			}
			_, _ = w.Write([]byte(orderBody))
		case r.Method == http.MethodPost && r.URL.Path == "/wc/store/v1/checkout/77":
			body, _ := io.ReadAll(r.Body)
			var payload store.CheckoutRequest
			if err := json.Unmarshal(body, &payload); err != nil {
				http.Error(w, "bad payload", http.StatusBadRequest)
				t.Errorf("decode checkout payload: %v", err)
				return
			}
			placedBilling = payload.BillingAddress
			_, _ = w.Write([]byte(`{"order_id":77,"status":"processing","payment_result":{"payment_status":"success","redirect_url":"https://shop.example.com/thanks"}}`))
		default:
			http.NotFound(w, r)
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
	}))
	defer ts.Close()

	client := newTestClient(t, ts.URL)
	order := client.PayForOrder(77, "wc_order_key", "ada@example.com")

	// The wallet collected a different address during this attempt; the
	// order's own address must win.
	result, err := order.PlaceOrder(context.Background(), &store.CheckoutRequest{
		BillingAddress: store.Address{FirstName: "Wallet", LastName: "User", City: "Nowhere"},
		PaymentMethod:  "woocommerce_payments",
		PaymentData:    []store.PaymentDataEntry{{Key: "payment_method", Value: "woocommerce_payments"}},
	})
	if err != nil {
		t.Fatalf("place order: %v", err)
	}
	if result.OrderID != 77 {
		t.Fatalf("unexpected order id: %d", result.OrderID)
	}
	if placedBilling.FirstName != "Ada" || placedBilling.LastName != "Lovelace" || placedBilling.City != "York" {
		t.Fatalf("order addresses were not pinned, got %+v", placedBilling)
	}
}

func TestOrderClientAbsorbsAddressAndRateChanges(t *testing.T) {
	var gets int
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/wc/store/v1/order/5" {
			http.NotFound(w, r)
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			return
		}
		gets++
		_, _ = w.Write([]byte(orderBody))
	}))
	defer ts.Close()

	client := newTestClient(t, ts.URL)
	order := client.PayForOrder(5, "k", "")

	cart, err := order.UpdateCustomer(context.Background(), &store.CustomerUpdate{
		ShippingAddress: &store.Address{City: "Elsewhere", Country: "US"},
	})
	if err != nil {
		t.Fatalf("update customer: %v", err)
	}
	// The mutation is absorbed: the order snapshot comes back untouched.
	if cart.ShippingAddress.City != "York" {
		t.Fatalf("expected order shipping address, got %+v", cart.ShippingAddress)
	}

	if _, err := order.SelectShippingRate(context.Background(), &store.ShippingRateSelection{RateID: "flat_rate:1"}); err != nil {
		t.Fatalf("select shipping rate: %v", err)
	}
	if gets != 2 {
		t.Fatalf("expected 2 order fetches, got %d", gets)
	}
}

func TestOrderClientDryRunPlaceOrderSkipsAllHTTP(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		_, _ = w.Write([]byte(orderBody))
	}))
	defer ts.Close()

	client := newTestClient(t, ts.URL)
	order := client.PayForOrder(8, "k", "")

	// The address cache is cold; the refill fetch must honor dry run too.
	_, err := order.PlaceOrder(context.Background(), &store.CheckoutRequest{
		BillingAddress: store.Address{LastName: "Doe"},
		PaymentMethod:  "woocommerce_payments",
		PaymentData:    []store.PaymentDataEntry{{Key: "payment_method", Value: "woocommerce_payments"}},
	}, DryRun())
	if err != nil {
		t.Fatalf("dry run place order: %v", err)
	}
	if atomic.LoadInt32(&hits) != 0 {
		t.Fatalf("expected no HTTP calls during dry run, got %d", hits)
	}
}

func TestOrderClientValidatesOrderRef(t *testing.T) {
	client := newTestClient(t, "https://shop.example.com")

	if _, err := client.PayForOrder(0, "k", "").GetOrder(context.Background()); !IsValidationError(err) {
		t.Fatalf("expected validation error for order id 0, got %v", err)
	}
	if _, err := client.PayForOrder(5, "", "").GetOrder(context.Background()); !IsValidationError(err) {
		t.Fatalf("expected validation error for empty order key, got %v", err)
	}
}
