package formvault

import (
	"crypto/rand"
	"io"
	"net/http"
	"time"

	"github.com/formvault/client-go/internal/api"
)

// config holds configuration shared by the pipeline and its components.
type config struct {
	httpClient *http.Client
	timeout    time.Duration
	retries    int
	retryOn    []int
	random     io.Reader
	sealed     bool
}

func newConfig(opts []Option) *config {
	cfg := &config{
		random: rand.Reader,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// apiConfig builds the bridge client configuration. A bridge request is
// issued exactly once unless WithRetries enabled retrying.
func (c *config) apiConfig(bridgeURL string) api.Config {
	retry := api.DefaultRetryConfig()
	retry.MaxRetries = 0
	if c.retries > 0 {
		retry.MaxRetries = c.retries
	}
	if len(c.retryOn) > 0 {
		codes := make(map[int]struct{}, len(c.retryOn))
		for _, code := range c.retryOn {
			codes[code] = struct{}{}
		}
		retry.RetryableOn = func(statusCode int) bool {
			_, ok := codes[statusCode]
			return ok
		}
	}

	return api.Config{
		BaseURL:    bridgeURL,
		HTTPClient: c.httpClient,
		Timeout:    c.timeout,
		Retry:      retry,
	}
}

// Option configures the pipeline and its components.
type Option func(*config)

// WithHTTPClient sets a custom HTTP client for bridge requests.
func WithHTTPClient(client *http.Client) Option {
	return func(c *config) {
		c.httpClient = client
	}
}

// WithTimeout sets the timeout for bridge requests.
func WithTimeout(timeout time.Duration) Option {
	return func(c *config) {
		c.timeout = timeout
	}
}

// WithRetries enables retrying failed bridge requests with exponential
// backoff, up to count attempts beyond the first. By default a request is
// issued exactly once; retry policy belongs to the caller.
func WithRetries(count int) Option {
	return func(c *config) {
		c.retries = count
	}
}

// WithRetryOn sets the HTTP status codes that trigger a retry. It has no
// effect unless retries are enabled with WithRetries.
// Default: [408, 429, 500, 502, 503, 504]
func WithRetryOn(statusCodes []int) Option {
	return func(c *config) {
		c.retryOn = statusCodes
	}
}

// WithRandom sets the CSPRNG used for keys, salts, and IVs. The default is
// crypto/rand. Intended for tests and alternative platform providers; a
// non-cryptographic source here breaks every security property of the
// scheme.
func WithRandom(r io.Reader) Option {
	return func(c *config) {
		if r != nil {
			c.random = r
		}
	}
}

// WithSealedKeyExchange makes temporary-key requests carry an ephemeral
// ML-KEM-768 public key, so a bridge that supports sealing can return the
// key as a KEM ciphertext instead of plain hex. Bridges that don't support
// sealing still answer with a plain key, which the client accepts.
func WithSealedKeyExchange() Option {
	return func(c *config) {
		c.sealed = true
	}
}
