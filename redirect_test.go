package go_wcpay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecomkit/go-wcpay/consts"
)

func TestParseRedirectPaymentIntent(t *testing.T) {
	req := ParseRedirect("https://shop.example.com/checkout/order-received/123/?key=wc_order_abc#wcpay-confirm-pi:123:pi_1_secret_xyz:nonce-1")
	require.NotNil(t, req)
	assert.False(t, req.IsSetupIntent)
	assert.Equal(t, int64(123), req.OrderID)
	assert.Equal(t, "pi_1_secret_xyz", req.ClientSecret)
	assert.Equal(t, "nonce-1", req.Nonce)
}

func TestParseRedirectSetupIntent(t *testing.T) {
	req := ParseRedirect("https://shop.example.com/checkout/order-received/9/#wcpay-confirm-si:9:seti_1_secret_abc:n")
	require.NotNil(t, req)
	assert.True(t, req.IsSetupIntent)
	assert.Equal(t, int64(9), req.OrderID)
	assert.Equal(t, "seti_1_secret_abc", req.ClientSecret)
}

func TestParseRedirectPassthrough(t *testing.T) {
	// No step-up fragment means nothing to confirm, not a failure.
	assert.Nil(t, ParseRedirect("https://shop.example.com/checkout/order-received/123/?key=wc_order_abc"))
	assert.Nil(t, ParseRedirect(""))
	assert.Nil(t, ParseRedirect("https://shop.example.com/#wcpay-confirm-xx:1:s:n"))
	assert.Nil(t, ParseRedirect("https://shop.example.com/#wcpay-confirm-pi:notanumber:s:n"))
}

func TestParseRedirectOrderPayPathOverridesFragmentOrderID(t *testing.T) {
	req := ParseRedirect("https://shop.example.com/checkout/order-pay/456/?pay_for_order=true#wcpay-confirm-pi:123:pi_1_secret_xyz:nonce-1")
	require.NotNil(t, req)
	assert.Equal(t, int64(456), req.OrderID)
}

func TestConfirmFragmentPrefixIsAuthoritative(t *testing.T) {
	// Both the parser and the stripper are derived from the exported
	// prefix, so a URL built from it must round-trip through them.
	redirect := "https://shop.example.com/checkout/order-received/42/" + consts.ConfirmFragmentPrefix + "pi:42:pi_1_secret_xyz:nonce-1"

	req := ParseRedirect(redirect)
	require.NotNil(t, req)
	assert.Equal(t, int64(42), req.OrderID)
	assert.Equal(t, "pi_1_secret_xyz", req.ClientSecret)

	assert.Equal(t,
		"https://shop.example.com/checkout/order-received/42/",
		stripConfirmFragment(redirect))
}

func TestStripConfirmFragment(t *testing.T) {
	assert.Equal(t,
		"https://shop.example.com/checkout/order-received/123/",
		stripConfirmFragment("https://shop.example.com/checkout/order-received/123/#wcpay-confirm-pi:123:s:n"))
	assert.Equal(t,
		"https://shop.example.com/thanks",
		stripConfirmFragment("https://shop.example.com/thanks"))
}
