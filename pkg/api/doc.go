// Package api is the single entry point for outbound calls to the backend.
//
// A Client resolves, on every call, a fresh transport Instance bound to the
// current base URL and the current auth token, issues the call through it
// and hands back the response untouched. Failures are logged once and
// returned unchanged; nothing is retried or cached.
//
// # Usage
//
//	client := api.New(api.StaticConfig(os.Getenv("API_URL")), tokens,
//	    api.WithLogger(logger),
//	)
//
//	resp, err := client.Get(ctx, "/user/me")
//	if err != nil {
//	    return err
//	}
//	var me User
//	if err := resp.Decode(&me); err != nil {
//	    return err
//	}
//
// GET and DELETE never carry a body. POST and PUT JSON-encode data unless it
// is already raw bytes, a string, an io.Reader or url.Values.
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
package api
