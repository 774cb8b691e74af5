// Package errs provides standardized error types for the marketplace application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes error types for the business failure kinds the core
// reports to its boundary layer:
//   - ObjectNotFoundError: a referenced product/order/inventory/delivery/user does not exist
//   - UnauthorizedError: the caller's role or ownership does not permit the action
//   - InvalidTransitionError: a state change violates the order/delivery state machine
//   - InsufficientStockError: a requested quantity exceeds available stock at decrement time
//   - ObjectAlreadyExistsError: a uniqueness-required row already exists
//   - ValueIsRequiredError / ValueIsInvalidError / ValueIsOutOfRangeError: construction guards
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrObjectNotFound)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method so errors.Is classifies against the sentinel
//
// The boundary layer relies on the sentinels to map business failures to
// transport-level status codes; none of these errors should crash the process.
package errs
