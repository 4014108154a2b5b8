package api

// DefaultBaseURL is used when the ConfigProvider supplies no base URL.
const DefaultBaseURL = "http://localhost:5000/"

// ConfigProvider supplies the public base URL of the backend.
// It is consulted on every call, so the value may change at runtime.
type ConfigProvider interface {
	PublicBaseURL() string
}

// StaticConfig is a ConfigProvider with a fixed base URL.
type StaticConfig string

// PublicBaseURL returns the configured URL.
func (s StaticConfig) PublicBaseURL() string { return string(s) }

// ConfigFunc adapts a function to ConfigProvider.
type ConfigFunc func() string

// PublicBaseURL calls f.
func (f ConfigFunc) PublicBaseURL() string {
	if f == nil {
		return ""
	}
	return f()
}

// resolveBaseURL applies the fallback to DefaultBaseURL.
func resolveBaseURL(p ConfigProvider) string {
	if p != nil {
		if u := p.PublicBaseURL(); u != "" {
			return u
		}
	}
	return DefaultBaseURL
}
