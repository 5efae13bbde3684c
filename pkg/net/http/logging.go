package http

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Redacted replaces the value of sensitive headers in log records.
const Redacted = "[REDACTED]"

var sensitiveHeaders = []string{"Authorization", "Proxy-Authorization", "Cookie"}

// RedactHeaders returns a copy of h with sensitive values replaced.
func RedactHeaders(h http.Header) http.Header {
	out := h.Clone()
	if out == nil {
		return http.Header{}
	}
	for _, name := range sensitiveHeaders {
		if values, ok := out[http.CanonicalHeaderKey(name)]; ok {
			redacted := make([]string, len(values))
			for i := range redacted {
				redacted[i] = Redacted
			}
			out[http.CanonicalHeaderKey(name)] = redacted
		}
	}
	return out
}

// Logging records each request before dispatch and its outcome afterwards.
func Logging(logger *zap.Logger) Interceptor {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			start := time.Now()
			requestID := r.Header.Get(RequestIDHeader)

			logger.Info("HTTP request sent",
				zap.String("method", r.Method),
				zap.String("url", r.URL.String()),
				zap.String("request_id", requestID),
				zap.Any("headers", RedactHeaders(r.Header)),
			)

			resp, err := next.RoundTrip(r)
			duration := time.Since(start)

			fields := []zap.Field{
				zap.String("method", r.Method),
				zap.String("url", r.URL.String()),
				zap.String("request_id", requestID),
				zap.Duration("duration", duration),
				zap.Float64("duration_ms", duration.Seconds()*1000),
			}
			if err != nil {
				logger.Error("HTTP request failed", append(fields, zap.Error(err))...)
				return nil, err
			}

			fields = append(fields, zap.Int("status_code", resp.StatusCode))
			switch {
			case resp.StatusCode >= 500:
				logger.Error("HTTP request completed with error", fields...)
			case resp.StatusCode >= 400:
				logger.Warn("HTTP request completed with warning", fields...)
			default:
				logger.Info("HTTP request completed", fields...)
			}
			return resp, nil
		})
	}
}
