package api

import (
	"net/url"
	"time"

	"github.com/bft-labs/apishell/pkg/log"
)

// Options is the per-call bag forwarded verbatim to the transport instance.
// The dispatcher never inspects it.
type Options struct {
	// Headers are set on the request after the instance defaults, so they
	// win over them (Authorization included).
	Headers map[string]string

	// Params are appended to the URL query.
	Params url.Values

	// Timeout bounds this call only. Zero leaves the HTTP client's own
	// behavior in place.
	Timeout time.Duration

	// ValidateStatus decides which statuses count as success.
	// Nil accepts 2xx.
	ValidateStatus func(status int) bool
}

// mergeOptions folds opts left to right into a single Options.
func mergeOptions(opts []Options) Options {
	switch len(opts) {
	case 0:
		return Options{}
	case 1:
		return opts[0]
	}

	var out Options
	for _, o := range opts {
		if len(o.Headers) > 0 {
			if out.Headers == nil {
				out.Headers = make(map[string]string, len(o.Headers))
			}
			for k, v := range o.Headers {
				out.Headers[k] = v
			}
		}
		if len(o.Params) > 0 {
			if out.Params == nil {
				out.Params = url.Values{}
			}
			for k, vs := range o.Params {
				out.Params[k] = append([]string(nil), vs...)
			}
		}
		if o.Timeout > 0 {
			out.Timeout = o.Timeout
		}
		if o.ValidateStatus != nil {
			out.ValidateStatus = o.ValidateStatus
		}
	}
	return out
}

// ClientOption configures optional behavior of a Client.
type ClientOption func(*clientOptions)

type clientOptions struct {
	httpClient HTTPClient
	logger     log.Logger
	factory    TransportFactory
}

// WithHTTPClient sets the client used to execute requests.
// If not provided, a plain *http.Client without a timeout is used.
func WithHTTPClient(client HTTPClient) ClientOption {
	return func(o *clientOptions) {
		o.httpClient = client
	}
}

// WithLogger sets the logger that receives failure diagnostics.
// If not provided, a no-op logger is used.
func WithLogger(logger log.Logger) ClientOption {
	return func(o *clientOptions) {
		o.logger = logger
	}
}

// WithTransportFactory replaces how per-call transports are built.
// The factory receives the resolved base URL and Authorization value.
func WithTransportFactory(factory TransportFactory) ClientOption {
	return func(o *clientOptions) {
		o.factory = factory
	}
}
