// Package httputil provides HTTP client construction with shared
// transport settings.
package httputil

import (
	"net/http"
	"time"
)

const (
	defaultTimeout = 30 * time.Second

	maxIdleConns        = 10
	maxIdleConnsPerHost = 2
	idleConnTimeout     = 30 * time.Second
)

// NewHTTPClient creates an HTTP client with the specified timeout and
// pooled idle connections.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        maxIdleConns,
			MaxIdleConnsPerHost: maxIdleConnsPerHost,
			IdleConnTimeout:     idleConnTimeout,
		},
	}
}

// NewDefaultHTTPClient creates an HTTP client with a 30 second timeout,
// suitable for most outbound API calls.
func NewDefaultHTTPClient() *http.Client {
	return NewHTTPClient(defaultTimeout)
}
