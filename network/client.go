// Package network builds the HTTP clients used to talk to the streaming site.
package network

import (
	"fmt"
	"net/http"
	"time"
)

// Client variants accepted by New.
const (
	Plain = "plain"
	TLS   = "tls"
)

// Variants lists the supported client variants.
func Variants() []string {
	return []string{Plain, TLS}
}

// New returns an HTTP client of the given variant with a fixed per-request timeout.
func New(variant string, timeout time.Duration) (*http.Client, error) {
	switch variant {
	case Plain, "":
		return &http.Client{Timeout: timeout, Transport: newTransport()}, nil
	case TLS:
		return &http.Client{Timeout: timeout, Transport: newChromeTransport(timeout)}, nil
	default:
		return nil, fmt.Errorf("unknown http client %q", variant)
	}
}

// newTransport clones the default transport with pool and timeout tuning.
func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 100
	t.MaxIdleConnsPerHost = 100
	t.MaxConnsPerHost = 200
	t.IdleConnTimeout = 30 * time.Second
	t.ResponseHeaderTimeout = 30 * time.Second
	t.ExpectContinueTimeout = 30 * time.Second
	return t
}
