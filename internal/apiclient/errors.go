package apiclient

import (
	"fmt"
	"net/http"

	"github.com/go-faster/errors"
)

// Failure categories. Every error returned by Client matches exactly one of
// ErrTransport or ErrStatus; a 401 additionally matches ErrUnauthorized.
var (
	ErrTransport    = errors.New("api transport failure")
	ErrStatus       = errors.New("api responded with non-success status")
	ErrUnauthorized = errors.New("api responded unauthorized")

	ErrMethodNotAllowed = errors.New("mutation method must be POST, PUT or PATCH")
)

// StatusError reports a non-2xx response
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("api responded with status %d", e.Code)
}

func (e *StatusError) Unwrap() []error {
	if e.Code == http.StatusUnauthorized {
		return []error{ErrStatus, ErrUnauthorized}
	}
	return []error{ErrStatus}
}

// TransportError reports a request that never produced a usable response:
// a network failure, a cancelled context, or an undecodable body.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return "api transport failure: " + e.Err.Error()
}

func (e *TransportError) Unwrap() []error {
	return []error{ErrTransport, e.Err}
}

// Category is the user-facing failure class of an error
type Category int

const (
	CategoryNone Category = iota
	CategoryTransport
	CategoryStatus
	CategoryUnauthorized
)

func (c Category) String() string {
	switch c {
	case CategoryNone:
		return "none"
	case CategoryTransport:
		return "transport-failure"
	case CategoryStatus:
		return "not-ok-status"
	case CategoryUnauthorized:
		return "unauthorized"
	default:
		return "unknown"
	}
}

// Categorize classifies err. Errors that did not come from Client count as
// transport failures.
func Categorize(err error) Category {
	switch {
	case err == nil:
		return CategoryNone
	case errors.Is(err, ErrUnauthorized):
		return CategoryUnauthorized
	case errors.Is(err, ErrStatus):
		return CategoryStatus
	default:
		return CategoryTransport
	}
}
