// Package errors provides the standardized error type for scalar function
// evaluation. Structural failures (unknown function, unsupported operand
// combination, arity mismatch) surface as EvalError values; domain-invalid
// inputs never do — they become null output cells.
package errors

import (
	"fmt"
)

// EvalError represents a structural evaluation failure.
type EvalError struct {
	Op       string // Operation stage (e.g. "Resolve", "Execute", "Register")
	Function string // Function name if applicable
	Message  string // Human-readable description
	Cause    error  // Underlying error cause
}

// Error implements the error interface.
func (e *EvalError) Error() string {
	if e.Function != "" {
		return fmt.Sprintf("%s failed for function '%s': %s", e.Op, e.Function, e.Message)
	}
	return fmt.Sprintf("%s failed: %s", e.Op, e.Message)
}

// Unwrap returns the underlying cause for error wrapping support.
func (e *EvalError) Unwrap() error {
	return e.Cause
}

// Is implements error equality checking for errors.Is().
func (e *EvalError) Is(target error) bool {
	if ee, ok := target.(*EvalError); ok {
		return e.Op == ee.Op && e.Function == ee.Function && e.Message == ee.Message
	}
	return false
}

// NewUnknownFunctionError reports a name the registry has no binding for.
func NewUnknownFunctionError(name string) *EvalError {
	return &EvalError{
		Op:       "Resolve",
		Function: name,
		Message:  "unknown function",
	}
}

// NewDuplicateFunctionError reports a second registration of a primary name.
func NewDuplicateFunctionError(name string) *EvalError {
	return &EvalError{
		Op:       "Register",
		Function: name,
		Message:  "function name already registered",
	}
}

// NewArityError reports a call with the wrong number of arguments.
func NewArityError(fn string, want, got int) *EvalError {
	return &EvalError{
		Op:       "Execute",
		Function: fn,
		Message:  fmt.Sprintf("expected %d arguments, got %d", want, got),
	}
}

// NewUnsupportedTypeError reports an operand combination outside the
// function's declared domain, e.g. a decimal operand where disallowed.
func NewUnsupportedTypeError(fn, typeName string) *EvalError {
	return &EvalError{
		Op:       "Execute",
		Function: fn,
		Message:  fmt.Sprintf("unsupported operand type: %s", typeName),
	}
}

// NewInvalidInputError reports malformed call inputs (mismatched row counts,
// nil columns).
func NewInvalidInputError(fn, message string) *EvalError {
	return &EvalError{
		Op:       "Execute",
		Function: fn,
		Message:  message,
	}
}

// NewInternalError wraps an unexpected failure from a lower layer.
func NewInternalError(op string, cause error) *EvalError {
	return &EvalError{
		Op:      op,
		Message: "internal error occurred",
		Cause:   cause,
	}
}
