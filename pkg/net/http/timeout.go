package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultTimeout is the hard upper bound on a single request, body included.
const DefaultTimeout = 60 * time.Second

var ErrTimeout = errors.New("request timed out")

// TimeoutError reports a request cancelled by the Timeout interceptor.
type TimeoutError struct {
	Method string
	URL    string
	After  time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s %s: %s after %s", e.Method, e.URL, ErrTimeout, e.After)
}

func (e *TimeoutError) Is(target error) bool { return target == ErrTimeout }

// Timeout satisfies net.Error.
func (e *TimeoutError) Timeout() bool   { return true }
func (e *TimeoutError) Temporary() bool { return false }

// Timeout cancels a request that has not completed within d. The deadline
// keeps running while the caller reads the body; closing the body releases it.
// There is no retry.
func Timeout(d time.Duration) Interceptor {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			ctx, cancel := context.WithTimeoutCause(r.Context(), d, ErrTimeout)
			terr := &TimeoutError{Method: r.Method, URL: r.URL.String(), After: d}

			resp, err := next.RoundTrip(r.WithContext(ctx))
			if err != nil {
				expired := errors.Is(context.Cause(ctx), ErrTimeout)
				cancel()
				if expired {
					return nil, terr
				}
				return nil, err
			}
			resp.Body = &deadlineBody{ReadCloser: resp.Body, ctx: ctx, cancel: cancel, err: terr}
			return resp, nil
		})
	}
}

type deadlineBody struct {
	io.ReadCloser
	ctx    context.Context
	cancel context.CancelFunc
	err    *TimeoutError
}

func (b *deadlineBody) Read(p []byte) (int, error) {
	n, err := b.ReadCloser.Read(p)
	if err != nil && err != io.EOF && errors.Is(context.Cause(b.ctx), ErrTimeout) {
		return n, b.err
	}
	return n, err
}

func (b *deadlineBody) Close() error {
	defer b.cancel()
	return b.ReadCloser.Close()
}
