package snap

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType represents error categories for parse and bind operations.
type ErrorType string

const (
	ErrorTypeStructural            ErrorType = "structural"
	ErrorTypeCyclicArgsFile        ErrorType = "cyclic_args_file"
	ErrorTypeArgsFile              ErrorType = "args_file"
	ErrorTypeUndefinedArgument     ErrorType = "undefined_argument"
	ErrorTypeAmbiguousArgument     ErrorType = "ambiguous_argument"
	ErrorTypeMissingRequired       ErrorType = "missing_required"
	ErrorTypeCardinality           ErrorType = "cardinality"
	ErrorTypeUnnamedDisallowed     ErrorType = "unnamed_disallowed"
	ErrorTypeNotFound              ErrorType = "not_found"
	ErrorTypeValueConversion       ErrorType = "value_conversion"
	ErrorTypeNoEligibleInitializer ErrorType = "no_eligible_initializer"
	ErrorTypeBindingConflict       ErrorType = "binding_conflict"
	ErrorTypeInvalidModel          ErrorType = "invalid_model"

	// ErrorTypeUnnamedWarning is only ever reported as a warning.
	ErrorTypeUnnamedWarning ErrorType = "unnamed_warning"
)

// ParseError is a single parse, validation or binding problem.
type ParseError struct {
	Type       ErrorType
	Message    string
	Argument   string   // argument name as supplied or declared, if any
	Values     []string // offending values, if any
	Suggestion string   // closest declared name for undefined arguments
	Cause      error
}

func (e *ParseError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("%s (did you mean '%s'?)", e.Message, e.Suggestion)
	}
	return e.Message
}

func (e *ParseError) Unwrap() error { return e.Cause }

// NewParseError creates a new ParseError with the given type and message
func NewParseError(errType ErrorType, message string) *ParseError {
	return &ParseError{
		Type:    errType,
		Message: message,
	}
}

// WithArgument records the argument the error is about.
func (e *ParseError) WithArgument(name string) *ParseError {
	e.Argument = name
	return e
}

// WithValues records the offending values.
func (e *ParseError) WithValues(values ...string) *ParseError {
	e.Values = values
	return e
}

// WithSuggestion sets the "did you mean" hint.
func (e *ParseError) WithSuggestion(suggestion string) *ParseError {
	e.Suggestion = suggestion
	return e
}

// WithCause wraps an underlying error.
func (e *ParseError) WithCause(cause error) *ParseError {
	e.Cause = cause
	return e
}

// AggregateError carries every validation problem found in one parse.
type AggregateError struct {
	Errors []*ParseError
}

func (e *AggregateError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d errors occurred while parsing arguments:", len(e.Errors))
	for _, err := range e.Errors {
		b.WriteString("\n  - ")
		b.WriteString(err.Error())
	}
	return b.String()
}

// Unwrap exposes every member to errors.Is and errors.As.
func (e *AggregateError) Unwrap() []error {
	errs := make([]error, len(e.Errors))
	for i, err := range e.Errors {
		errs[i] = err
	}
	return errs
}

// Warnings is the non-fatal report of a successful parse.
type Warnings struct {
	Items []*ParseError
}

func (w *Warnings) Error() string {
	msgs := make([]string, len(w.Items))
	for i, item := range w.Items {
		msgs[i] = item.Error()
	}
	return "warning: " + strings.Join(msgs, "; ")
}

func (w *Warnings) Unwrap() []error {
	errs := make([]error, len(w.Items))
	for i, item := range w.Items {
		errs[i] = item
	}
	return errs
}

// Len returns the number of warnings; zero for a nil report.
func (w *Warnings) Len() int {
	if w == nil {
		return 0
	}
	return len(w.Items)
}

// combine turns a non-empty error list into one error: the error itself when
// there is only one, an *AggregateError otherwise.
func combine(errs []*ParseError) error {
	switch len(errs) {
	case 0:
		return nil
	case 1:
		return errs[0]
	default:
		return &AggregateError{Errors: errs}
	}
}

// IsErrorType reports whether err, or any error it wraps, is a *ParseError of
// type t.
func IsErrorType(err error, t ErrorType) bool {
	if err == nil {
		return false
	}
	var pe *ParseError
	if errors.As(err, &pe) && pe.Type == t {
		return true
	}
	switch x := err.(type) {
	case interface{ Unwrap() []error }:
		for _, inner := range x.Unwrap() {
			if IsErrorType(inner, t) {
				return true
			}
		}
	case interface{ Unwrap() error }:
		return IsErrorType(x.Unwrap(), t)
	}
	return false
}

// ErrorsOf flattens err into its *ParseError members.
func ErrorsOf(err error) []*ParseError {
	var agg *AggregateError
	if errors.As(err, &agg) {
		return agg.Errors
	}
	var pe *ParseError
	if errors.As(err, &pe) {
		return []*ParseError{pe}
	}
	return nil
}
