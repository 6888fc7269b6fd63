package httpclient

import (
	"net/http"
	"time"
)

// DefaultUserAgent identifies the gateway to upstream providers.
const DefaultUserAgent = "HulukipediaGateway/1.0"

// Options holds HTTP client configuration options
type Options struct {
	Timeout   time.Duration
	UserAgent string
}

// Factory creates configured HTTP clients sharing one transport
type Factory struct {
	defaultOptions Options
	transport      http.RoundTripper
}

// NewFactory creates a new HTTP client factory with default options
func NewFactory(defaultOptions Options) *Factory {
	if defaultOptions.Timeout == 0 {
		defaultOptions.Timeout = 600 * time.Second
	}
	if defaultOptions.UserAgent == "" {
		defaultOptions.UserAgent = DefaultUserAgent
	}

	return &Factory{
		defaultOptions: defaultOptions,
		transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}
}

// CreateClient creates a new HTTP client with the specified options.
// Zero-valued options fall back to the factory defaults.
func (f *Factory) CreateClient(options Options) *http.Client {
	if options.Timeout == 0 {
		options.Timeout = f.defaultOptions.Timeout
	}
	if options.UserAgent == "" {
		options.UserAgent = f.defaultOptions.UserAgent
	}

	return &http.Client{
		Timeout: options.Timeout,
		Transport: &userAgentTransport{
			base:      f.transport,
			userAgent: options.UserAgent,
		},
	}
}

type userAgentTransport struct {
	base      http.RoundTripper
	userAgent string
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.userAgent != "" {
		req = req.Clone(req.Context())
		req.Header.Set("User-Agent", t.userAgent)
	}
	return t.base.RoundTrip(req)
}
