package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
)

const defaultAccept = "application/json, text/plain, */*"

// Transport is the per-call surface the dispatcher drives. *Instance implements it.
type Transport interface {
	Get(ctx context.Context, url string, opts Options) (*Response, error)
	Delete(ctx context.Context, url string, opts Options) (*Response, error)
	Post(ctx context.Context, url string, data any, opts Options) (*Response, error)
	Put(ctx context.Context, url string, data any, opts Options) (*Response, error)
}

// TransportFactory builds a Transport for one call.
type TransportFactory func(baseURL, authorization string) Transport

// Instance is a transport bound to one base URL and one Authorization value.
// It is built for a single call and never reused.
type Instance struct {
	client  HTTPClient
	baseURL string
	header  http.Header
}

// NewInstance builds an Instance. An empty authorization leaves the
// Authorization header unset; no placeholder value is sent.
func NewInstance(client HTTPClient, baseURL, authorization string) *Instance {
	if client == nil {
		client = http.DefaultClient
	}
	h := make(http.Header)
	h.Set("Accept", defaultAccept)
	if authorization != "" {
		h.Set("Authorization", authorization)
	}
	return &Instance{
		client:  client,
		baseURL: baseURL,
		header:  h,
	}
}

// BaseURL returns the base URL relative paths are resolved against.
func (i *Instance) BaseURL() string { return i.baseURL }

// Authorization returns the captured Authorization header value.
func (i *Instance) Authorization() string { return i.header.Get("Authorization") }

// Header returns the instance's default headers. The map belongs to this
// instance alone; changes affect only requests it sends afterwards.
func (i *Instance) Header() http.Header { return i.header }

// Get issues a GET request.
func (i *Instance) Get(ctx context.Context, url string, opts Options) (*Response, error) {
	return i.do(ctx, http.MethodGet, url, nil, opts)
}

// Delete issues a DELETE request.
func (i *Instance) Delete(ctx context.Context, url string, opts Options) (*Response, error) {
	return i.do(ctx, http.MethodDelete, url, nil, opts)
}

// Post issues a POST request with data as body.
func (i *Instance) Post(ctx context.Context, url string, data any, opts Options) (*Response, error) {
	return i.do(ctx, http.MethodPost, url, data, opts)
}

// Put issues a PUT request with data as body.
func (i *Instance) Put(ctx context.Context, url string, data any, opts Options) (*Response, error) {
	return i.do(ctx, http.MethodPut, url, data, opts)
}

func (i *Instance) do(ctx context.Context, method, ref string, data any, opts Options) (*Response, error) {
	target, err := buildURL(i.baseURL, ref, opts.Params)
	if err != nil {
		return nil, err
	}

	body, contentType, err := encodeBody(data)
	if err != nil {
		return nil, err
	}

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header = i.header.Clone()
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}

	resp, err := i.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	out := &Response{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Header:     resp.Header,
		Body:       respBody,
		Request:    req,
	}

	validate := opts.ValidateStatus
	if validate == nil {
		validate = defaultValidateStatus
	}
	if !validate(out.StatusCode) {
		return nil, &StatusError{Response: out}
	}
	return out, nil
}

func defaultValidateStatus(status int) bool {
	return status >= 200 && status < 300
}

var absoluteURL = regexp.MustCompile(`(?i)^([a-z][a-z\d+\-.]*:)?//`)

// joinURL resolves ref against base. Absolute refs are returned untouched.
func joinURL(base, ref string) string {
	if base == "" || absoluteURL.MatchString(ref) {
		return ref
	}
	if ref == "" {
		return base
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(ref, "/")
}

func buildURL(base, ref string, params url.Values) (string, error) {
	target := joinURL(base, ref)
	if len(params) == 0 {
		return target, nil
	}

	u, err := url.Parse(target)
	if err != nil {
		return "", fmt.Errorf("parse url: %w", err)
	}
	q := u.Query()
	for k, vs := range params {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// encodeBody turns data into a request body and the content type it implies.
func encodeBody(data any) (io.Reader, string, error) {
	switch v := data.(type) {
	case nil:
		return nil, "", nil
	case io.Reader:
		return v, "", nil
	case []byte:
		return bytes.NewReader(v), "", nil
	case string:
		return strings.NewReader(v), "", nil
	case json.RawMessage:
		return bytes.NewReader(v), "application/json", nil
	case url.Values:
		return strings.NewReader(v.Encode()), "application/x-www-form-urlencoded", nil
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return nil, "", fmt.Errorf("encode request body: %w", err)
		}
		return bytes.NewReader(b), "application/json", nil
	}
}
