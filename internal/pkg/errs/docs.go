// Package errs provides the standardized error taxonomy for the dispatch
// application. It implements a consistent pattern for error creation,
// formatting, and unwrapping that is used throughout the codebase.
//
// The package covers the common failure categories:
//   - ValueIsRequiredError: a required value is missing
//   - ValueIsInvalidError: a value violates a validation rule
//   - ValueIsOutOfRangeError: a value lies outside its allowed bounds
//   - ObjectNotFoundError: a referenced object does not exist
//
// Each error type follows the same pattern:
//   - A sentinel error variable (e.g. ErrObjectNotFound) for errors.Is checks
//   - A struct type carrying error details
//   - Constructor functions with and without an underlying cause
//   - Error() for formatting and Unwrap() for classification
//
// Callers classify failures with errors.Is against the sentinels rather
// than matching message strings, so "not found" can be distinguished from
// "validation failed" and from infrastructure errors at every layer.
package errs
