// Package apishell is an HTTP request wrapper for a JSON backend. It
// resolves the base URL from configuration, injects the current
// Authorization value on every call, and logs failures once before
// returning them.
//
// Example usage:
//
//	tokens := token.NewCell("")
//	client := apishell.New(apishell.StaticConfig("https://api.example.com/"), tokens)
//	resp, err := client.Get(ctx, "/user/me")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	var me User
//	if err := resp.Decode(&me); err != nil {
//	    log.Fatal(err)
//	}
package apishell

import (
	"github.com/bft-labs/apishell/pkg/api"
	"github.com/bft-labs/apishell/pkg/token"
)

// Client dispatches GET, POST, PUT and DELETE calls against the backend.
type Client = api.Client

// Options are per-call settings forwarded to the transport.
type Options = api.Options

// Response is the backend's answer, unmodified.
type Response = api.Response

// StatusError is returned for responses rejected by status validation.
type StatusError = api.StatusError

// Method identifies an HTTP method the client supports.
type Method = api.Method

// StaticConfig is a ConfigProvider with a fixed base URL.
type StaticConfig = api.StaticConfig

// Supported methods.
const (
	MethodGet    = api.MethodGet
	MethodPost   = api.MethodPost
	MethodPut    = api.MethodPut
	MethodDelete = api.MethodDelete
)

// DefaultBaseURL is used when the configured base URL is empty.
const DefaultBaseURL = api.DefaultBaseURL

// ErrUnsupportedMethod is returned for a Method outside the supported set.
var ErrUnsupportedMethod = api.ErrUnsupportedMethod

// New creates a Client. See api.New.
func New(config api.ConfigProvider, tokens token.Source, opts ...api.ClientOption) *Client {
	return api.New(config, tokens, opts...)
}
