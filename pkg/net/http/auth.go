package http

import (
	"net/http"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

const RequestIDHeader = "X-Request-Id"

// RequestID tags requests that carry no id with a fresh uuid.
func RequestID() Interceptor {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			if r.Header.Get(RequestIDHeader) != "" {
				return next.RoundTrip(r)
			}
			r2 := r.Clone(r.Context())
			r2.Header.Set(RequestIDHeader, uuid.NewString())
			return next.RoundTrip(r2)
		})
	}
}

// Authorization attaches the bearer token from src. A request that already
// has an Authorization header, or a source without a valid token, passes
// through unchanged.
func Authorization(src oauth2.TokenSource) Interceptor {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			if r.Header.Get("Authorization") != "" {
				return next.RoundTrip(r)
			}
			tok, err := src.Token()
			if err != nil || !tok.Valid() {
				return next.RoundTrip(r)
			}
			r2 := r.Clone(r.Context())
			tok.SetAuthHeader(r2)
			return next.RoundTrip(r2)
		})
	}
}
