package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors used as the root of every error kind in the application.
// Callers classify failures with errors.Is against these values.
var (
	ErrObjectNotFound     = errors.New("object not found")
	ErrValueIsInvalid     = errors.New("value is invalid")
	ErrValueIsOutOfRange  = errors.New("value is out of range")
	ErrValueIsRequired    = errors.New("value is required")
	ErrVersionIsInvalid   = errors.New("version is invalid")
	ErrForbidden          = errors.New("operation is forbidden")
	ErrConflict           = errors.New("state conflict")
	ErrPreconditionFailed = errors.New("precondition failed")
)

// sanitize collapses newlines so error messages stay single-line in logs.
func sanitize(v any) string {
	return strings.ReplaceAll(fmt.Sprintf("%s", v), "\n", " ")
}

// ObjectNotFoundError indicates that a requested object does not exist.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

// NewObjectNotFoundError creates an ObjectNotFoundError without an underlying cause.
func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

// NewObjectNotFoundErrorWithCause creates an ObjectNotFoundError wrapping an underlying cause.
func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %s)",
			ErrObjectNotFound, e.ParamName, sanitize(e.ID), e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, sanitize(e.ID))
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsInvalidError indicates that a supplied value failed validation.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewValueIsInvalidError creates a ValueIsInvalidError without an underlying cause.
func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

// NewValueIsInvalidErrorWithCause creates a ValueIsInvalidError wrapping an underlying cause.
func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsInvalid, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError indicates that a value is outside its allowed bounds.
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

// NewValueIsOutOfRangeError creates a ValueIsOutOfRangeError without an underlying cause.
func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

// NewValueIsOutOfRangeErrorWithCause creates a ValueIsOutOfRangeError wrapping an underlying cause.
func NewValueIsOutOfRangeErrorWithCause(
	paramName string, value, minValue, maxValue any, cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %v is %s, min value is %v, max value is %v",
		ErrValueIsInvalid, e.Value, e.ParamName, e.Min, e.Max)
	msg = strings.ReplaceAll(msg, "\n", " ")
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %s)", msg, e.Cause)
	}
	return msg
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ValueIsRequiredError indicates that a required value is missing.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

// NewValueIsRequiredError creates a ValueIsRequiredError without an underlying cause.
func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

// NewValueIsRequiredErrorWithCause creates a ValueIsRequiredError wrapping an underlying cause.
func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsRequired, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// VersionIsInvalidError indicates that an aggregate version check failed.
type VersionIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewVersionIsInvalidError creates a VersionIsInvalidError without an underlying cause.
func NewVersionIsInvalidError(paramName string) *VersionIsInvalidError {
	return &VersionIsInvalidError{ParamName: paramName}
}

// NewVersionIsInvalidErrorWithCause creates a VersionIsInvalidError wrapping an underlying cause.
func NewVersionIsInvalidErrorWithCause(paramName string, cause error) *VersionIsInvalidError {
	return &VersionIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *VersionIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrVersionIsInvalid, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrVersionIsInvalid, e.ParamName)
}

func (e *VersionIsInvalidError) Unwrap() error {
	return ErrVersionIsInvalid
}

// ForbiddenError indicates a role or relationship mismatch between the acting
// party and the operation it attempted.
type ForbiddenError struct {
	Operation string
	Actor     string
	Cause     error
}

// NewForbiddenError creates a ForbiddenError without an underlying cause.
func NewForbiddenError(operation, actor string) *ForbiddenError {
	return &ForbiddenError{Operation: operation, Actor: actor}
}

// NewForbiddenErrorWithCause creates a ForbiddenError wrapping an underlying cause.
func NewForbiddenErrorWithCause(operation, actor string, cause error) *ForbiddenError {
	return &ForbiddenError{Operation: operation, Actor: actor, Cause: cause}
}

func (e *ForbiddenError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s, actor is: %s (cause: %s)", ErrForbidden, e.Operation, e.Actor, e.Cause)
	}
	return fmt.Sprintf("%s: %s, actor is: %s", ErrForbidden, e.Operation, e.Actor)
}

func (e *ForbiddenError) Unwrap() error {
	return ErrForbidden
}

// ConflictError indicates that an operation lost a compare-and-set race or
// attempted to overwrite state that is already set. Current and Expected carry
// enough detail for the caller to explain the rejection.
type ConflictError struct {
	Resource string
	Current  any
	Expected any
	Cause    error
}

// NewConflictError creates a ConflictError without an underlying cause.
func NewConflictError(resource string, current, expected any) *ConflictError {
	return &ConflictError{Resource: resource, Current: current, Expected: expected}
}

// NewConflictErrorWithCause creates a ConflictError wrapping an underlying cause.
func NewConflictErrorWithCause(resource string, current, expected any, cause error) *ConflictError {
	return &ConflictError{Resource: resource, Current: current, Expected: expected, Cause: cause}
}

func (e *ConflictError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s, current is: %v, expected is: %v (cause: %s)",
			ErrConflict, e.Resource, e.Current, e.Expected, e.Cause)
	}
	return fmt.Sprintf("%s: %s, current is: %v, expected is: %v",
		ErrConflict, e.Resource, e.Current, e.Expected)
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// PreconditionFailedError indicates that an operation was attempted before a
// required prior step completed.
type PreconditionFailedError struct {
	Operation string
	Missing   string
	Cause     error
}

// NewPreconditionFailedError creates a PreconditionFailedError without an underlying cause.
func NewPreconditionFailedError(operation, missing string) *PreconditionFailedError {
	return &PreconditionFailedError{Operation: operation, Missing: missing}
}

// NewPreconditionFailedErrorWithCause creates a PreconditionFailedError wrapping an underlying cause.
func NewPreconditionFailedErrorWithCause(operation, missing string, cause error) *PreconditionFailedError {
	return &PreconditionFailedError{Operation: operation, Missing: missing, Cause: cause}
}

func (e *PreconditionFailedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s, missing: %s (cause: %s)", ErrPreconditionFailed, e.Operation, e.Missing, e.Cause)
	}
	return fmt.Sprintf("%s: %s, missing: %s", ErrPreconditionFailed, e.Operation, e.Missing)
}

func (e *PreconditionFailedError) Unwrap() error {
	return ErrPreconditionFailed
}
