package api

import (
	"errors"
	"fmt"
	"strings"
)

// StatusError represents a well-formed HTTP error response from the
// server. Anything that is not a StatusError (connection refused, DNS
// failure, timeout) is a transport failure and is retryable.
type StatusError struct {
	Message string
	Code    int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server error (%d): %s", e.Code, e.Message)
}

// IsTransportFailure reports whether err is a network-level failure as
// opposed to a server response. Transport failures route a GET to the
// cache and a mutation to the write-intent queue; server responses pass
// through unmodified.
func IsTransportFailure(err error) bool {
	if err == nil {
		return false
	}
	var statusErr *StatusError
	return !errors.As(err, &statusErr)
}

// IsCSRFRejection reports whether err is the server rejecting the
// anti-forgery token. The caller refreshes the token and retries once.
func IsCSRFRejection(err error) bool {
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		return false
	}
	if statusErr.Code != 400 && statusErr.Code != 403 {
		return false
	}
	return strings.Contains(strings.ToLower(statusErr.Message), "csrf")
}

// IsAuthRejection reports whether err is an authentication failure
// (expired or missing session).
func IsAuthRejection(err error) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr) && statusErr.Code == 401
}
