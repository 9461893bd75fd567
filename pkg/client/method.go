package client

import (
	"fmt"
	"net/http"
	"strings"
)

// Method is an HTTP method the proxy forwards.
type Method string

const (
	MethodGet    Method = http.MethodGet
	MethodPost   Method = http.MethodPost
	MethodPut    Method = http.MethodPut
	MethodDelete Method = http.MethodDelete
)

// ParseMethod upper-cases s and matches it against the supported methods.
// Anything else wraps ErrInvalidMethod.
func ParseMethod(s string) (Method, error) {
	switch m := Method(strings.ToUpper(s)); m {
	case MethodGet, MethodPost, MethodPut, MethodDelete:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidMethod, s)
	}
}

func (m Method) String() string {
	return string(m)
}
