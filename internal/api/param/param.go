// Package param reads path parameters that chi may hand back still escaped.
package param

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/bcnelson/squares/internal/domain"
	"github.com/go-chi/chi/v5"
)

// GroupName returns the decoded {name} path parameter.
//
// chi matches against r.URL.RawPath when it is set (the path held an escape
// such as %2F) and against the already decoded r.URL.Path otherwise, so the
// parameter is unescaped only in the first case.
func GroupName(r *http.Request) (string, error) {
	return Unescaped(r, "name")
}

// Unescaped returns the path parameter key decoded exactly once.
func Unescaped(r *http.Request, key string) (string, error) {
	value := chi.URLParam(r, key)
	if r.URL.RawPath == "" {
		return value, nil
	}
	decoded, err := url.PathUnescape(value)
	if err != nil {
		return "", fmt.Errorf("path parameter %s: %w", key, domain.ErrInvalidInput)
	}
	return decoded, nil
}
