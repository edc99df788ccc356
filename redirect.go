package go_wcpay

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/ecomkit/go-wcpay/consts"
)

// StepUpRequest is a decoded step-up authentication request.
//
// Created by ParseRedirect, consumed exactly once by the intent
// confirmer, never persisted.
type StepUpRequest struct {
	// IsSetupIntent marks a saved-method setup with no live charge yet.
	IsSetupIntent bool
	OrderID       int64
	ClientSecret  string
	Nonce         string
}

// The fragment grammar is fixed:
// #wcpay-confirm-(pi|si):{orderId}:{clientSecret}:{nonce}
var confirmFragmentRe = regexp.MustCompile(regexp.QuoteMeta(consts.ConfirmFragmentPrefix) + `(pi|si):([0-9]+):([^:#]+):([^:#]+)$`)

// ParseRedirect decodes the synthetic redirect URL produced by the
// backend into a StepUpRequest.
//
// A nil result means "nothing to confirm": the redirect carries no
// step-up fragment and callers must treat it as success, not failure.
func ParseRedirect(redirectURL string) *StepUpRequest {
	m := confirmFragmentRe.FindStringSubmatch(redirectURL)
	if m == nil {
		return nil
	}
	orderID, err := strconv.ParseInt(m[2], 10, 64)
	if err != nil {
		return nil
	}
	req := &StepUpRequest{
		IsSetupIntent: m[1] == "si",
		OrderID:       orderID,
		ClientSecret:  m[3],
		Nonce:         m[4],
	}
	// The order-pay path segment is more authoritative than the fragment
	// for the order id.
	if id, ok := orderPayID(redirectURL); ok {
		req.OrderID = id
	}
	return req
}

func orderPayID(redirectURL string) (int64, bool) {
	u, err := url.Parse(redirectURL)
	if err != nil {
		return 0, false
	}
	segments := strings.Split(u.Path, "/")
	for i, s := range segments {
		if s != "order-pay" || i+1 >= len(segments) {
			continue
		}
		if id, err := strconv.ParseInt(segments[i+1], 10, 64); err == nil {
			return id, true
		}
	}
	return 0, false
}

// stripConfirmFragment removes the step-up fragment so the final
// redirect lands on the plain order-received URL.
func stripConfirmFragment(redirectURL string) string {
	if i := strings.Index(redirectURL, consts.ConfirmFragmentPrefix); i >= 0 {
		return redirectURL[:i]
	}
	return redirectURL
}
