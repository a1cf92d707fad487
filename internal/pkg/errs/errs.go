// Package errs holds the error taxonomy shared by the domain, the use cases
// and the adapters. Each kind pairs a sentinel with a struct carrying details,
// so callers match with errors.Is and inspect with errors.As.
package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrObjectNotFound    = errors.New("object not found")
	ErrValueIsInvalid    = errors.New("value is invalid")
	ErrValueIsOutOfRange = errors.New("value is out of range")
	ErrValueIsRequired   = errors.New("value is required")
	ErrVersionConflict   = errors.New("version conflict")
	ErrExternalService   = errors.New("external service failed")
	ErrAccessDenied      = errors.New("access denied")
	ErrUnauthenticated   = errors.New("unauthenticated")
)

func sanitize(v any) string {
	return strings.ReplaceAll(fmt.Sprintf("%v", v), "\n", " ")
}

func withCause(msg string, cause error) string {
	if cause == nil {
		return msg
	}
	return fmt.Sprintf("%s (cause: %v)", msg, cause)
}

// ObjectNotFoundError

type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %v)",
			ErrObjectNotFound, e.ParamName, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID)
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsInvalidError

type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName), e.Cause)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError

type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

func NewValueIsOutOfRangeErrorWithCause(
	paramName string, value, minValue, maxValue any, cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{
		ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause,
	}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %s is %s, min value is %s, max value is %s",
		ErrValueIsInvalid, sanitize(e.Value), e.ParamName, sanitize(e.Min), sanitize(e.Max))
	return withCause(msg, e.Cause)
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ValueIsRequiredError

type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName), e.Cause)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// VersionConflictError is returned when a conditional write finds a row whose
// version no longer matches the one the caller loaded.
type VersionConflictError struct {
	Entity   string
	ID       any
	Expected int64
}

func NewVersionConflictError(entity string, id any, expected int64) *VersionConflictError {
	return &VersionConflictError{Entity: entity, ID: id, Expected: expected}
}

func (e *VersionConflictError) Error() string {
	return fmt.Sprintf("%s: %s %v expected version %d", ErrVersionConflict, e.Entity, e.ID, e.Expected)
}

func (e *VersionConflictError) Unwrap() error {
	return ErrVersionConflict
}

// ExternalServiceError wraps failures of remote collaborators (payment
// gateway, identity provider).
type ExternalServiceError struct {
	Service string
	Cause   error
}

func NewExternalServiceError(service string, cause error) *ExternalServiceError {
	return &ExternalServiceError{Service: service, Cause: cause}
}

func (e *ExternalServiceError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrExternalService, e.Service), e.Cause)
}

func (e *ExternalServiceError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrExternalService}
	}
	return []error{ErrExternalService, e.Cause}
}

// AccessDeniedError

type AccessDeniedError struct {
	Action      string
	PrincipalID any
}

func NewAccessDeniedError(action string, principalID any) *AccessDeniedError {
	return &AccessDeniedError{Action: action, PrincipalID: principalID}
}

func (e *AccessDeniedError) Error() string {
	return fmt.Sprintf("%s: principal %v may not %s", ErrAccessDenied, e.PrincipalID, e.Action)
}

func (e *AccessDeniedError) Unwrap() error {
	return ErrAccessDenied
}
