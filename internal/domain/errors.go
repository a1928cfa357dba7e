package domain

import (
	"errors"
	"fmt"
)

// ErrMalformedPayload marks a success-status response whose body does not
// match the expected series shapes. It is a fetch failure like any other.
var ErrMalformedPayload = errors.New("malformed forecast payload")

// FetchError is a per-city forecast fetch failure. The engine absorbs it
// into the empty-statistics marker; it never aborts a batch.
type FetchError struct {
	Reason string
	Err    error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("forecast fetch failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("forecast fetch failed: %s", e.Reason)
}

func (e *FetchError) Unwrap() error { return e.Err }

// NewFetchError wraps err as a FetchError with a short reason.
func NewFetchError(reason string, err error) *FetchError {
	return &FetchError{Reason: reason, Err: err}
}
