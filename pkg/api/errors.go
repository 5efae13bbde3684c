package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	pipeline "github.com/byxorna/wrench/pkg/net/http"
)

var ErrNotAuthenticated = errors.New("not authenticated")

// APIError is a non-2xx response from the backend.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	// Message is the backend's own explanation, when it gave one.
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: %d: %s", e.Method, e.Path, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode))
}

func (e *APIError) Is(target error) bool {
	return target == ErrNotAuthenticated && e.StatusCode == http.StatusUnauthorized
}

// DecodeError is a response whose body did not match the expected shape.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("unexpected response from %s: %s", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Kind classifies a failure for the person at the keyboard.
type Kind int

const (
	KindNone Kind = iota
	KindTimeout
	KindNetwork
	KindBackend
	KindUnknown
)

func (k Kind) String() string {
	return map[Kind]string{
		KindNone:    "none",
		KindTimeout: "timeout",
		KindNetwork: "network",
		KindBackend: "backend",
		KindUnknown: "unknown",
	}[k]
}

// Classify sorts err into the failure taxonomy.
func Classify(err error) Kind {
	if err == nil {
		return KindNone
	}
	var apiErr *APIError
	var netErr net.Error
	switch {
	case errors.Is(err, pipeline.ErrTimeout):
		return KindTimeout
	case errors.As(err, &apiErr):
		return KindBackend
	case errors.Is(err, context.Canceled):
		return KindNetwork
	case errors.As(err, &netErr):
		return KindNetwork
	}
	return KindUnknown
}

// UserMessage renders err for a notification. The backend's message is used
// when present, otherwise a generic message for the failure kind.
func UserMessage(err error) string {
	switch Classify(err) {
	case KindNone:
		return ""
	case KindTimeout:
		return "Request timed out, please try again"
	case KindNetwork:
		return "Network error: could not reach the server"
	case KindBackend:
		var apiErr *APIError
		errors.As(err, &apiErr)
		if apiErr.Message != "" {
			return apiErr.Message
		}
		switch apiErr.StatusCode {
		case http.StatusUnauthorized:
			return "Your session has expired, please log in again"
		case http.StatusForbidden:
			return "You do not have permission to do that"
		case http.StatusNotFound:
			return "Not found"
		case http.StatusConflict:
			return "The record was changed or is still in use"
		}
		return fmt.Sprintf("The server could not complete the request (%d)", apiErr.StatusCode)
	}
	return "Unexpected error"
}
