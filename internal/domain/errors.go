package domain

import (
	"errors"
	"strconv"
)

// UnspecifiedError is the code reported when the exchange flags an error
// without naming one. Callers pattern-match on this exact string.
const UnspecifiedError = "unspecifiedError"

// RateLimitCode is returned when calls exceed the documented pacing of one
// call per 0.1s per source address. Spelled as the API documentation
// spells it.
const RateLimitCode = "apiLimitExeeded"

// RetriableError defines an interface for errors that can be retried
type RetriableError interface {
	error
	IsRetriable() bool
}

// IsRetriable checks if an error is retriable
func IsRetriable(err error) bool {
	var re RetriableError
	if errors.As(err, &re) {
		return re.IsRetriable()
	}
	return false
}

// RemoteError is a failure reported by the exchange itself: the response
// envelope carried result != "success". Code is the exchange's error code.
type RemoteError struct {
	Code string
}

func (e *RemoteError) Error() string {
	return "remote error: " + e.Code
}

// IsRetriable is true only for rate limiting; the caller owns the backoff.
func (e *RemoteError) IsRetriable() bool {
	return e.Code == RateLimitCode
}

// HTTPError represents a non-2xx response from the exchange. The envelope
// never arrived, so there is no exchange error code to report.
type HTTPError struct {
	StatusCode int
}

func (e *HTTPError) Error() string {
	return "server responded with status " + strconv.Itoa(e.StatusCode)
}

func (e *HTTPError) IsRetriable() bool {
	return e.StatusCode >= 500
}

// NetworkError represents a network-related error that may be retriable
type NetworkError struct {
	Op        string // Operation that failed (e.g., "connect", "read")
	Err       error  // Underlying error
	Retriable bool   // Whether this error is retriable
}

func (e *NetworkError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *NetworkError) IsRetriable() bool {
	return e.Retriable
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// NewNetworkError creates a new retriable network error
func NewNetworkError(op string, err error) *NetworkError {
	return &NetworkError{Op: op, Err: err, Retriable: true}
}

// ConfigError represents a configuration error (never retriable)
type ConfigError struct {
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	return "config error [" + e.Field + "]: " + e.Err.Error()
}

func (e *ConfigError) IsRetriable() bool {
	return false
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ErrProtocol marks a client/exchange contract violation: a response shape
// the protocol does not allow (unknown order type, a batch record naming an
// order never submitted, and so on). Never retriable; indicates a bug on
// one side, not a runtime condition.
var ErrProtocol = errors.New("protocol violation")
