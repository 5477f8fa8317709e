// Package backend talks to the ML March backend service.
//
// Every backend operation is a logical route: a path plus a method. How a route
// travels over the wire is decided by the Requester implementation. QueryClient
// flattens the route into the query string of a single GET. RESTClient uses the
// real verb and a JSON body.
package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

type Method string

const (
	MethodGet    Method = "GET"
	MethodPost   Method = "POST"
	MethodDelete Method = "DELETE"
)

func (m Method) Valid() bool {
	switch m {
	case MethodGet, MethodPost, MethodDelete:
		return true
	}
	return false
}

// carriesData reports whether a payload is sent for this method.
func (m Method) carriesData() bool {
	return m == MethodPost || m == MethodDelete
}

type Requester interface {
	Request(ctx context.Context, path string, method Method, data any) (json.RawMessage, error)
}

const (
	defaultFailureMessage = "API request failed"
	notFoundCode          = "not_found"
)

var (
	ErrInvalidRequest = errors.New("invalid backend request")
	ErrRequestFailed  = errors.New("backend request failed")
	ErrEmailRequired  = errors.New("email is required")
)

// RequestError is returned when the backend answered with a non-2xx status.
type RequestError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *RequestError) Error() string {
	return e.Message
}

func (e *RequestError) Is(target error) bool {
	return target == ErrRequestFailed
}

// IsNotFound reports whether err is a backend answer meaning "no such record".
// A structured code wins over the message when the backend sends one.
func IsNotFound(err error) bool {
	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		return false
	}
	if reqErr.Code != "" {
		return reqErr.Code == notFoundCode
	}
	return strings.Contains(reqErr.Message, "not found")
}

func validate(path string, method Method) error {
	if path == "" {
		return fmt.Errorf("%w: empty path", ErrInvalidRequest)
	}
	if !method.Valid() {
		return fmt.Errorf("%w: unsupported method %q", ErrInvalidRequest, method)
	}
	return nil
}
