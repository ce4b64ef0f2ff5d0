package services

import (
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/dmitrijs2005/useradmin/internal/client/client"
)

// ErrValidation is matched by every *ValidationError. Input rejected with it
// never reached the server.
var ErrValidation = errors.New("validation failed")

// Transport failures, re-exported so callers only need this package.
var (
	ErrUnauthorized = client.ErrUnauthorized
	ErrForbidden    = client.ErrForbidden
	ErrConflict     = client.ErrConflict
	ErrServer       = client.ErrServer
	ErrNetwork      = client.ErrNetwork
	ErrProtocol     = client.ErrProtocol
	ErrRequest      = client.ErrRequest
)

// ValidationError lists the offending fields by name.
type ValidationError struct {
	Fields validation.Errors
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrValidation, e.Fields.Error())
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func (e *ValidationError) Unwrap() error {
	return e.Fields
}

func invalidField(name, reason string) *ValidationError {
	return &ValidationError{Fields: validation.Errors{name: errors.New(reason)}}
}

// asValidationError converts the result of validation.ValidateStruct.
func asValidationError(err error) error {
	if err == nil {
		return nil
	}
	var fields validation.Errors
	if errors.As(err, &fields) {
		return &ValidationError{Fields: fields}
	}
	return err
}

// RefetchError is returned next to a successful mutation result when the
// follow-up list request failed. The mutation itself was applied.
type RefetchError struct {
	Commit Commit
	Err    error
}

func (e *RefetchError) Error() string {
	return fmt.Sprintf("refetch after %s: %v", e.Commit.Op, e.Err)
}

func (e *RefetchError) Unwrap() error {
	return e.Err
}
