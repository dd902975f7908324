package api

import (
	"errors"
	"fmt"
)

// ErrMalformedPayload marks a 2xx response whose body did not match the
// expected shape. Wrapped with detail by decode helpers.
var ErrMalformedPayload = errors.New("malformed server payload")

// Kind classifies a gateway failure for callers that branch on it.
type Kind int

const (
	// KindUnknown is returned for errors that did not come from the gateway.
	KindUnknown Kind = iota
	// KindNetwork means no HTTP response was received at all.
	KindNetwork
	// KindAuthExpired is a 401 that survived the bounded refresh-retry;
	// the user has to re-authenticate.
	KindAuthExpired
	// KindValidation is any other 4xx; the server message is surfaced verbatim.
	KindValidation
	// KindServer is a 5xx.
	KindServer
)

// Error is the single failure shape the gateway produces. Status is the HTTP
// status code, or 0 when the request never got a response.
type Error struct {
	Message string
	Status  int
}

func (e *Error) Error() string {
	return e.Message
}

// Kind maps the status code onto the failure taxonomy.
func (e *Error) Kind() Kind {
	switch {
	case e.Status == 0:
		return KindNetwork
	case e.Status == 401:
		return KindAuthExpired
	case e.Status >= 400 && e.Status < 500:
		return KindValidation
	case e.Status >= 500:
		return KindServer
	}
	return KindUnknown
}

// Classify extracts the failure kind from any error returned by the gateway.
func Classify(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind()
	}
	return KindUnknown
}

func httpError(status int) *Error {
	return &Error{Message: fmt.Sprintf("HTTP error! status: %d", status), Status: status}
}
