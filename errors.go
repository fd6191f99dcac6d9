// Package leap is a dialect-aware SQL construction layer.
//
// The root package holds the error taxonomy shared by the tokenizer, the
// dialect translator, the precompilers and the statement builders. The
// building blocks themselves live under dialect/sql.
package leap

import (
	"errors"
	"fmt"
	"strings"
)

// Standard sentinel errors for the error kinds of the SQL pipeline.
var (
	// ErrInvalidArgument is returned when a prepare step receives a value
	// outside its legal domain (wrong type, unknown keyword or operator).
	ErrInvalidArgument = errors.New("leap: invalid argument")

	// ErrInvalidBuildInstruction is returned when builder methods are called
	// in a structurally illegal order.
	ErrInvalidBuildInstruction = errors.New("leap: invalid build instruction")

	// ErrTokenize is returned when a statement contains a malformed literal,
	// comment, bracketed identifier or unbalanced parentheses.
	ErrTokenize = errors.New("leap: malformed statement")

	// ErrPoisoned is wrapped by the error a builder reports once an earlier
	// call has failed.
	ErrPoisoned = errors.New("leap: builder is poisoned by an earlier error")
)

// InvalidArgumentError describes a value rejected by a prepare step.
type InvalidArgumentError struct {
	Op     string // Operation that rejected the value (e.g. "PrepareOperator")
	Value  any    // Offending value
	Reason string // Optional detail
}

// Error returns the error string.
func (e *InvalidArgumentError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("leap: %s: invalid argument %#v: %s", e.Op, e.Value, e.Reason)
	}
	return fmt.Sprintf("leap: %s: invalid argument %#v", e.Op, e.Value)
}

// Is reports whether the target error matches InvalidArgumentError.
// This allows errors.Is(err, ErrInvalidArgument) to return true.
func (e *InvalidArgumentError) Is(err error) bool {
	return err == ErrInvalidArgument
}

// NewInvalidArgumentError returns a new InvalidArgumentError.
func NewInvalidArgumentError(op string, value any, reason string) *InvalidArgumentError {
	return &InvalidArgumentError{Op: op, Value: value, Reason: reason}
}

// IsInvalidArgument returns true if the error is an InvalidArgumentError.
func IsInvalidArgument(err error) bool {
	if err == nil {
		return false
	}
	var e *InvalidArgumentError
	return errors.As(err, &e) || errors.Is(err, ErrInvalidArgument)
}

// BuildInstructionError describes an illegal sequence of builder calls.
type BuildInstructionError struct {
	Op     string // Builder method that was called
	Reason string // Why the call is not allowed here
}

// Error returns the error string.
func (e *BuildInstructionError) Error() string {
	return fmt.Sprintf("leap: %s: invalid build instruction: %s", e.Op, e.Reason)
}

// Is reports whether the target error matches BuildInstructionError.
func (e *BuildInstructionError) Is(err error) bool {
	return err == ErrInvalidBuildInstruction
}

// NewBuildInstructionError returns a new BuildInstructionError.
func NewBuildInstructionError(op, reason string) *BuildInstructionError {
	return &BuildInstructionError{Op: op, Reason: reason}
}

// IsInvalidBuildInstruction returns true if the error is a BuildInstructionError.
func IsInvalidBuildInstruction(err error) bool {
	if err == nil {
		return false
	}
	var e *BuildInstructionError
	return errors.As(err, &e) || errors.Is(err, ErrInvalidBuildInstruction)
}

// TokenizeError points at a malformed span of a SQL statement.
type TokenizeError struct {
	Offset int    // Byte offset of the malformed span
	Text   string // Malformed span
	Reason string
}

// Error returns the error string.
func (e *TokenizeError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("leap: malformed statement at offset %d (%q): %s", e.Offset, e.Text, e.Reason)
	}
	return fmt.Sprintf("leap: malformed statement at offset %d (%q)", e.Offset, e.Text)
}

// Is reports whether the target error matches TokenizeError.
func (e *TokenizeError) Is(err error) bool {
	return err == ErrTokenize
}

// IsTokenizeError returns true if the error is a TokenizeError.
func IsTokenizeError(err error) bool {
	if err == nil {
		return false
	}
	var e *TokenizeError
	return errors.As(err, &e) || errors.Is(err, ErrTokenize)
}

// PoisonedError is reported by a builder for every call made after a
// failed one. It wraps the original failure.
type PoisonedError struct {
	Op  string // Method called on the poisoned builder
	Err error  // First error recorded by the builder
}

// Error returns the error string.
func (e *PoisonedError) Error() string {
	return fmt.Sprintf("leap: %s on poisoned builder: %v", e.Op, e.Err)
}

// Unwrap returns the original error and ErrPoisoned.
func (e *PoisonedError) Unwrap() []error {
	return []error{ErrPoisoned, e.Err}
}

// ConstraintError represents a database constraint violation error.
type ConstraintError struct {
	msg  string
	wrap error
}

// Error returns the error string.
func (e ConstraintError) Error() string {
	return fmt.Sprintf("leap: constraint failed: %s", e.msg)
}

// Unwrap returns the underlying error.
func (e ConstraintError) Unwrap() error {
	return e.wrap
}

// NewConstraintError returns a new ConstraintError with the given message.
func NewConstraintError(msg string, wrap error) error {
	return ConstraintError{msg: msg, wrap: wrap}
}

// IsConstraintError returns true if the error is a ConstraintError.
func IsConstraintError(err error) bool {
	if err == nil {
		return false
	}
	var e ConstraintError
	return errors.As(err, &e)
}

// AggregateError represents multiple errors collected during an operation.
type AggregateError struct {
	Errors []error
}

// Error returns the error string.
func (e *AggregateError) Error() string {
	if len(e.Errors) == 0 {
		return "leap: no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	var sb strings.Builder
	sb.WriteString("leap: multiple errors:")
	for i, err := range e.Errors {
		fmt.Fprintf(&sb, "\n  [%d] %v", i+1, err)
	}
	return sb.String()
}

// Unwrap returns the collected errors.
func (e *AggregateError) Unwrap() []error {
	return e.Errors
}

// NewAggregateError returns a new AggregateError if there are errors,
// otherwise returns nil.
func NewAggregateError(errs ...error) error {
	var filtered []error
	for _, err := range errs {
		if err != nil {
			filtered = append(filtered, err)
		}
	}
	if len(filtered) == 0 {
		return nil
	}
	if len(filtered) == 1 {
		return filtered[0]
	}
	return &AggregateError{Errors: filtered}
}

// Kind classifies an error of the SQL pipeline.
type Kind int

// Error kinds.
const (
	KindUnknown Kind = iota
	KindInvalidArgument
	KindInvalidBuildInstruction
	KindTokenize
	KindConstraint
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindInvalidArgument:
		return "invalid argument"
	case KindInvalidBuildInstruction:
		return "invalid build instruction"
	case KindTokenize:
		return "tokenize"
	case KindConstraint:
		return "constraint"
	default:
		return "unknown"
	}
}

// KindOf returns the kind of err, looking through wrapped errors.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindUnknown
	case IsInvalidBuildInstruction(err):
		return KindInvalidBuildInstruction
	case IsInvalidArgument(err):
		return KindInvalidArgument
	case IsTokenizeError(err):
		return KindTokenize
	case IsConstraintError(err):
		return KindConstraint
	default:
		return KindUnknown
	}
}
