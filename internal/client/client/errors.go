package client

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("conflict")
	ErrServer       = errors.New("server error")
	ErrNetwork      = errors.New("network error")
	ErrProtocol     = errors.New("protocol error")
	ErrRequest      = errors.New("request rejected")
)

// APIError is returned for every failed API call. Kind is one of the
// sentinel errors above, so callers can use errors.Is(err, ErrForbidden).
type APIError struct {
	Kind    error
	Status  int    // HTTP status, 0 when no response was received
	Message string // server-provided message, if any
	Err     error  // underlying cause, if any
}

func (e *APIError) Error() string {
	switch {
	case e.Message != "" && e.Status != 0:
		return fmt.Sprintf("%s (%d): %s", e.Kind, e.Status, e.Message)
	case e.Message != "":
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	case e.Status != 0:
		return fmt.Sprintf("%s (%d)", e.Kind, e.Status)
	default:
		return e.Kind.Error()
	}
}

func (e *APIError) Is(target error) bool {
	return target == e.Kind
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// ProtocolError reports a successful response whose payload is unusable.
func ProtocolError(message string) *APIError {
	return &APIError{Kind: ErrProtocol, Message: message}
}
