package store

import (
	"errors"
	"fmt"
	"net"
	"syscall"
	"time"
)

// RateLimitedError reports that the store throttled a request. RetryAfter is
// the server-advised wait, zero when the server did not specify one.
type RateLimitedError struct {
	RetryAfter time.Duration
}

func (e *RateLimitedError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited, retry after %s", e.RetryAfter)
	}
	return "rate limited"
}

// TransientError reports a failure worth retrying: a server error status or
// a broken/timed-out connection.
type TransientError struct {
	Status int
	Err    error
}

func (e *TransientError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transient store failure: %v", e.Err)
	}
	return fmt.Sprintf("transient store failure: status %d", e.Status)
}

func (e *TransientError) Unwrap() error { return e.Err }

// APIError is a definitive rejection from the store. It is never retried.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("store error %d (%s): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("store error %d: %s", e.Status, e.Message)
}

// classifyTransport sorts a request transport failure into the taxonomy.
// Connection refused/reset and timeouts are transient, everything else is
// passed through unchanged.
func classifyTransport(err error) error {
	var nerr net.Error
	if errors.As(err, &nerr) && nerr.Timeout() {
		return &TransientError{Err: err}
	}
	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) {
		return &TransientError{Err: err}
	}
	return err
}
