package gateway

import (
	"errors"
	"fmt"
)

// TransportError indicates the backend could not be reached, answered with a
// non-success status, or returned a body that does not match the expected shape.
type TransportError struct {
	Op         string
	StatusCode int    // 0 when no response was received
	Detail     string // the service's "detail" field, if any
	Err        error
}

func (e *TransportError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Detail != "":
		return fmt.Sprintf("%s: backend returned %d: %s", e.Op, e.StatusCode, e.Detail)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s: backend returned %d", e.Op, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return e.Op + ": transport failure"
}

func (e *TransportError) Unwrap() error { return e.Err }

// ValidationError indicates a required input was missing or out of range.
// No request is sent when it is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsValidation reports whether err is or wraps a *ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// IsTransport reports whether err is or wraps a *TransportError.
func IsTransport(err error) bool {
	var t *TransportError
	return errors.As(err, &t)
}

// UserMessage renders err for display in the UI.
func UserMessage(err error) string {
	var t *TransportError
	if errors.As(err, &t) {
		if t.Detail != "" {
			return t.Detail
		}
		if t.StatusCode == 0 {
			return "Backend unreachable. Make sure the learning service is running."
		}
	}
	return err.Error()
}
