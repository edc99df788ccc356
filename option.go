package go_wcpay

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/stremovskyy/recorder"

	"github.com/ecomkit/go-wcpay/consts"
	"github.com/ecomkit/go-wcpay/log"
)

type Option func(*config) error

type config struct {
	storeBaseURL string

	httpClient *http.Client
	logger     log.Logger
	logBodies  bool

	retryAttempts int
	retryWait     time.Duration
	recorder      recorder.Recorder

	gatewayID        string
	targetDecimals   int
	pricesIncludeTax bool
	credentialMode   CredentialMode
	methodTypes      []string

	nonce     string
	cartToken string

	prober    Prober
	confirmer IntentConfirmer
}

func defaultConfig() config {
	return config{
		httpClient:     &http.Client{Timeout: 30 * time.Second},
		logger:         log.NewDefault(),
		retryAttempts:  1,
		retryWait:      300 * time.Millisecond,
		gatewayID:      consts.GatewayID,
		targetDecimals: consts.DefaultCurrencyDecimals,
		methodTypes:    []string{"card"},
	}
}

// WithStoreBaseURL sets the Store API origin, e.g. "https://shop.example.com".
func WithStoreBaseURL(baseURL string) Option {
	return func(cfg *config) error {
		if baseURL == "" {
			return errors.New("store base url is empty")
		}
		cfg.storeBaseURL = baseURL
		return nil
	}
}

// WithHTTPClient sets a custom *http.Client.
func WithHTTPClient(client *http.Client) Option {
	return func(cfg *config) error {
		if client == nil {
			return errors.New("http client is nil")
		}
		cfg.httpClient = client
		return nil
	}
}

// WithClient is an alias of WithHTTPClient.
func WithClient(client *http.Client) Option {
	return WithHTTPClient(client)
}

// WithTimeout sets http client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(cfg *config) error {
		if timeout <= 0 {
			return errors.New("timeout must be > 0")
		}
		cfg.httpClient.Timeout = timeout
		return nil
	}
}

func WithLogger(logger log.Logger) Option {
	return func(cfg *config) error {
		if logger == nil {
			cfg.logger = log.NopLogger{}
			return nil
		}
		cfg.logger = logger
		return nil
	}
}

// WithLogHTTPBodies enables verbose request/response body logging for debugging.
//
// Disabled by default because bodies may contain sensitive data.
func WithLogHTTPBodies(enabled bool) Option {
	return func(cfg *config) error {
		cfg.logBodies = enabled
		return nil
	}
}

// WithRecorder attaches a recorder for HTTP traffic capture.
func WithRecorder(r recorder.Recorder) Option {
	return func(cfg *config) error {
		cfg.recorder = r
		return nil
	}
}

func WithRetry(attempts int, wait time.Duration) Option {
	return func(cfg *config) error {
		if attempts <= 0 {
			return errors.New("retry attempts must be > 0")
		}
		if wait <= 0 {
			return errors.New("retry wait must be > 0")
		}
		cfg.retryAttempts = attempts
		cfg.retryWait = wait
		return nil
	}
}

// WithGatewayID overrides the payment gateway identifier sent with checkout
// requests. Rarely needed outside of white-labeled gateway installs.
func WithGatewayID(id string) Option {
	return func(cfg *config) error {
		id = strings.TrimSpace(id)
		if id == "" {
			return errors.New("gateway id is empty")
		}
		cfg.gatewayID = id
		return nil
	}
}

// WithCurrencyDecimals sets the minor-unit precision the payment SDK expects.
// Store amounts are rescaled to this precision before they reach the wallet.
func WithCurrencyDecimals(decimals int) Option {
	return func(cfg *config) error {
		if decimals < 0 {
			return errors.New("currency decimals must be >= 0")
		}
		cfg.targetDecimals = decimals
		return nil
	}
}

// WithTaxInclusivePrices mirrors the store's tax-inclusive display setting.
// When enabled, wallet line items and shipping amounts include tax and no
// separate tax line is shown.
func WithTaxInclusivePrices(enabled bool) Option {
	return func(cfg *config) error {
		cfg.pricesIncludeTax = enabled
		return nil
	}
}

// WithCredentialMode selects the credential type created per confirmation
// attempt. Resolved once here; never re-checked mid-flight.
func WithCredentialMode(mode CredentialMode) Option {
	return func(cfg *config) error {
		switch mode {
		case CredentialPaymentMethod, CredentialConfirmationToken:
			cfg.credentialMode = mode
			return nil
		default:
			return errors.New("unknown credential mode")
		}
	}
}

// WithPaymentMethodTypes sets the express payment method types advertised
// to the gateway alongside the credential. Defaults to ["card"].
func WithPaymentMethodTypes(types ...string) Option {
	return func(cfg *config) error {
		if len(types) == 0 {
			return errors.New("payment method types are empty")
		}
		cfg.methodTypes = append([]string(nil), types...)
		return nil
	}
}

// WithStoreNonce sets the Store API nonce sent on every request.
func WithStoreNonce(nonce string) Option {
	return func(cfg *config) error {
		cfg.nonce = nonce
		return nil
	}
}

// WithCartToken sets the Cart-Token header identifying the guest cart session.
func WithCartToken(token string) Option {
	return func(cfg *config) error {
		cfg.cartToken = token
		return nil
	}
}

// WithProber attaches the capability prober used by the availability service.
func WithProber(p Prober) Option {
	return func(cfg *config) error {
		cfg.prober = p
		return nil
	}
}

// WithIntentConfirmer attaches the step-up authentication driver invoked
// when order placement returns a confirmation redirect.
func WithIntentConfirmer(c IntentConfirmer) Option {
	return func(cfg *config) error {
		cfg.confirmer = c
		return nil
	}
}
