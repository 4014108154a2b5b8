package api

import (
	"net/http"
	"strings"
)

// Method is the closed set of HTTP methods the dispatcher knows.
type Method int

const (
	MethodGet Method = iota
	MethodPost
	MethodPut
	MethodDelete
)

// String returns the lowercase method name.
func (m Method) String() string {
	switch m {
	case MethodGet:
		return "get"
	case MethodPost:
		return "post"
	case MethodPut:
		return "put"
	case MethodDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// HTTP returns the wire method, or "" for an unknown value.
func (m Method) HTTP() string {
	switch m {
	case MethodGet:
		return http.MethodGet
	case MethodPost:
		return http.MethodPost
	case MethodPut:
		return http.MethodPut
	case MethodDelete:
		return http.MethodDelete
	default:
		return ""
	}
}

// HasBody reports whether the method sends a request body.
func (m Method) HasBody() bool {
	return m == MethodPost || m == MethodPut
}

// ParseMethod maps a method name in any case to a Method. "del" is
// accepted as an alias for delete.
func ParseMethod(s string) (Method, bool) {
	switch strings.ToLower(s) {
	case "get":
		return MethodGet, true
	case "post":
		return MethodPost, true
	case "put":
		return MethodPut, true
	case "delete", "del":
		return MethodDelete, true
	default:
		return 0, false
	}
}
