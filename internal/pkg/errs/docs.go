// Package errs provides standardized error types for the marketplace application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package covers the error taxonomy of the order lifecycle core:
//   - ValueIsRequiredError / ValueIsInvalidError / ValueIsOutOfRangeError: malformed input
//   - ObjectNotFoundError: unknown order or courier
//   - ForbiddenError: role or relationship mismatch
//   - ConflictError: stale-state compare-and-set loss, double assignment, double delivery
//   - PreconditionFailedError: transition attempted before a required prior step
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrConflict)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method so errors.Is matches the sentinel
//
// Nothing is silently swallowed at a component boundary: every failure is
// returned synchronously with one of these kinds.
package errs
