package go_wcpay

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ecomkit/go-wcpay/consts"
	"github.com/ecomkit/go-wcpay/store"
)

// AvailabilityService answers "can this wallet method pay this cart".
//
// Probes are expensive (they spin up a throwaway payment element), so
// outcomes are memoized per method and per normalized amount+currency.
// Concurrent checks for the same key share a single in-flight probe.
type AvailabilityService struct {
	c      *Client
	prober Prober

	mu    sync.Mutex
	cache map[consts.ExpressMethod]map[string]*probeEntry
}

type probeEntry struct {
	done      chan struct{}
	available bool
}

func newAvailabilityService(c *Client, prober Prober) *AvailabilityService {
	return &AvailabilityService{
		c:      c,
		prober: prober,
		cache:  make(map[consts.ExpressMethod]map[string]*probeEntry),
	}
}

// Check reports whether method can pay the given cart. A probe failure
// is a normal "unavailable" outcome, not an error; the error return is
// reserved for misconfiguration and context cancellation.
func (s *AvailabilityService) Check(ctx context.Context, method consts.ExpressMethod, cart *store.Cart) (bool, error) {
	if s == nil || s.c == nil {
		return false, errors.New("client is nil")
	}
	if s.prober == nil {
		return false, errors.New("prober is not configured; use WithProber(...)")
	}
	if cart == nil {
		return false, &ValidationError{Fields: []FieldError{{Field: "cart", Message: "is nil"}}}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	amount := s.c.transformer.Total(cart)
	currency := cart.Totals.CurrencyCode
	key := fmt.Sprintf("%d%s", amount, currency)

	s.mu.Lock()
	byKey, ok := s.cache[method]
	if !ok {
		byKey = make(map[string]*probeEntry)
		s.cache[method] = byKey
	}
	entry, ok := byKey[key]
	if !ok {
		entry = &probeEntry{done: make(chan struct{})}
		byKey[key] = entry
		// The probe outlives the first caller's context: later callers
		// with the same key wait on the same result.
		go s.runProbe(entry, ProbeRequest{Method: method, Amount: amount, CurrencyCode: currency})
	}
	s.mu.Unlock()

	select {
	case <-entry.done:
		return entry.available, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

func (s *AvailabilityService) runProbe(entry *probeEntry, req ProbeRequest) {
	defer close(entry.done)
	available, err := s.prober.Probe(context.Background(), req)
	if err != nil {
		s.c.cfg.logger.Warnf("[WCPay] availability probe failed: method=%s amount=%d currency=%s err=%v", req.Method, req.Amount, req.CurrencyCode, err)
		return
	}
	entry.available = available
}
