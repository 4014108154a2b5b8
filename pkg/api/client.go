package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/bft-labs/apishell/pkg/log"
	"github.com/bft-labs/apishell/pkg/token"
)

// Client dispatches calls to the backend. It is safe for concurrent use:
// nothing it holds is mutated after New, and each call builds its own
// transport.
type Client struct {
	config     ConfigProvider
	tokens     token.Source
	httpClient HTTPClient
	logger     log.Logger
	factory    TransportFactory
}

// New creates a Client reading the base URL from config and the
// Authorization value from tokens. Either may be nil.
func New(config ConfigProvider, tokens token.Source, opts ...ClientOption) *Client {
	o := clientOptions{
		httpClient: &http.Client{},
		logger:     log.NewNoopLogger(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = log.NewNoopLogger()
	}
	if o.httpClient == nil {
		o.httpClient = &http.Client{}
	}

	c := &Client{
		config:     config,
		tokens:     tokens,
		httpClient: o.httpClient,
		logger:     o.logger,
		factory:    o.factory,
	}
	if c.factory == nil {
		c.factory = func(baseURL, authorization string) Transport {
			return NewInstance(c.httpClient, baseURL, authorization)
		}
	}
	return c
}

// NewInstance builds the transport instance a call made right now would use.
func (c *Client) NewInstance() *Instance {
	return NewInstance(c.httpClient, c.baseURL(), c.authorization())
}

// BaseURL returns the base URL a call made right now would use.
func (c *Client) BaseURL() string {
	return c.baseURL()
}

// Get issues a GET request. GET never carries a body.
func (c *Client) Get(ctx context.Context, url string, opts ...Options) (*Response, error) {
	return c.request(ctx, MethodGet, url, nil, opts...)
}

// Post issues a POST request with data as body.
func (c *Client) Post(ctx context.Context, url string, data any, opts ...Options) (*Response, error) {
	return c.request(ctx, MethodPost, url, data, opts...)
}

// Put issues a PUT request with data as body.
func (c *Client) Put(ctx context.Context, url string, data any, opts ...Options) (*Response, error) {
	return c.request(ctx, MethodPut, url, data, opts...)
}

// Del issues a DELETE request. DELETE never carries a body.
func (c *Client) Del(ctx context.Context, url string, opts ...Options) (*Response, error) {
	return c.request(ctx, MethodDelete, url, nil, opts...)
}

// Do issues a request for an arbitrary Method. data is dropped for GET and DELETE.
func (c *Client) Do(ctx context.Context, method Method, url string, data any, opts ...Options) (*Response, error) {
	return c.request(ctx, method, url, data, opts...)
}

func (c *Client) request(ctx context.Context, method Method, url string, data any, opts ...Options) (*Response, error) {
	callID := uuid.NewString()
	c.logger.Debug("dispatch",
		log.String("call_id", callID),
		log.String("method", method.String()),
		log.String("url", url),
	)

	t := c.factory(c.baseURL(), c.authorization())
	o := mergeOptions(opts)

	var (
		resp *Response
		err  error
	)
	switch method {
	case MethodGet:
		resp, err = t.Get(ctx, url, o)
	case MethodDelete:
		resp, err = t.Delete(ctx, url, o)
	case MethodPost:
		resp, err = t.Post(ctx, url, data, o)
	case MethodPut:
		resp, err = t.Put(ctx, url, data, o)
	default:
		err = fmt.Errorf("%w: %d", ErrUnsupportedMethod, int(method))
	}

	if err != nil {
		c.logger.Error(err.Error(),
			log.String("call_id", callID),
			log.String("method", method.String()),
			log.String("url", url),
		)
		return nil, err
	}
	return resp, nil
}

func (c *Client) baseURL() string {
	return resolveBaseURL(c.config)
}

func (c *Client) authorization() string {
	if c.tokens == nil {
		return ""
	}
	return c.tokens.Value()
}
