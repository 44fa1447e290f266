package client

import (
	"errors"
	"fmt"
)

// ErrRequestFailed matches every error returned by a Client operation.
var ErrRequestFailed = errors.New("request failed")

// ErrNilRequest is the cause when Chat is given no request.
var ErrNilRequest = errors.New("nil request")

// RequestError carries the cause of a failed call: a transport failure, an
// unreadable body or a body that is not a single JSON value. Server-side
// error statuses are not errors.
type RequestError struct {
	Op     string
	Method string
	URL    string
	Err    error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s: %s %s: %s: %v", e.Op, e.Method, e.URL, ErrRequestFailed, e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// Is reports ErrRequestFailed as a match so callers need not know the concrete type.
func (e *RequestError) Is(target error) bool {
	return target == ErrRequestFailed
}
