// Package http wraps every outbound request to the backend in an ordered chain
// of interceptors: request ids, authorization, logging, metrics and a hard
// timeout.
package http

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

// Interceptor wraps a RoundTripper with one stage of request/response handling.
type Interceptor func(next http.RoundTripper) http.RoundTripper

// RoundTripperFunc adapts a func to http.RoundTripper.
type RoundTripperFunc func(*http.Request) (*http.Response, error)

func (f RoundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

// Chain wraps base with interceptors. The first interceptor is the outermost,
// so it sees the request first and the response last.
func Chain(base http.RoundTripper, interceptors ...Interceptor) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	rt := base
	for i := len(interceptors) - 1; i >= 0; i-- {
		rt = interceptors[i](rt)
	}
	return rt
}

// Options configures the default pipeline.
type Options struct {
	Logger *zap.Logger
	// Tokens supplies the bearer token. Requests go out without one when it
	// is nil or has no valid token.
	Tokens oauth2.TokenSource
	// Metrics is optional.
	Metrics *Metrics
	// Timeout defaults to DefaultTimeout.
	Timeout time.Duration
}

// Interceptors returns the default chain, outermost first.
func (o Options) Interceptors() []Interceptor {
	logger := o.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := o.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	chain := []Interceptor{RequestID()}
	if o.Tokens != nil {
		chain = append(chain, Authorization(o.Tokens))
	}
	chain = append(chain, Logging(logger))
	if o.Metrics != nil {
		chain = append(chain, o.Metrics.Interceptor())
	}
	return append(chain, Timeout(timeout))
}

// NewClient returns an http.Client whose transport is base wrapped in the
// default chain.
func NewClient(base http.RoundTripper, o Options) *http.Client {
	return &http.Client{Transport: Chain(base, o.Interceptors()...)}
}

// NewRegistry returns a registry with the pipeline metrics registered.
func NewRegistry() (*prometheus.Registry, *Metrics) {
	reg := prometheus.NewRegistry()
	return reg, NewMetrics(reg)
}
