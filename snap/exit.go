package snap

import "errors"

// ExitError requests a specific exit code from program code.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return "exit"
}

func (e *ExitError) Unwrap() error { return e.Err }

// ExitCodeDefaults holds common default codes.
type ExitCodeDefaults struct {
	Success         int // default: 0
	GeneralError    int // default: 1
	MisusageError   int // default: 2
	ValidationError int // default: 3
	NotFoundError   int // default: 127
}

// DefaultExitCodes returns the stock codes.
func DefaultExitCodes() ExitCodeDefaults {
	return ExitCodeDefaults{Success: 0, GeneralError: 1, MisusageError: 2, ValidationError: 3, NotFoundError: 127}
}

// ExitCodes maps parse and bind errors to process exit codes.
type ExitCodes struct {
	byType   map[ErrorType]int
	defaults ExitCodeDefaults
}

// NewExitCodes returns a mapping prewired for every error category: command
// line misuse exits with MisusageError, values that fail to convert or bind
// with ValidationError and missing files or directories with NotFoundError.
func NewExitCodes() *ExitCodes {
	e := &ExitCodes{byType: make(map[ErrorType]int)}
	return e.Default(DefaultExitCodes())
}

// Define overrides the code used for one error category.
func (e *ExitCodes) Define(typ ErrorType, code int) *ExitCodes {
	e.byType[typ] = code
	return e
}

// Default replaces the default codes and rewires every category to them.
// Call it before Define.
func (e *ExitCodes) Default(d ExitCodeDefaults) *ExitCodes {
	e.defaults = d
	for _, t := range []ErrorType{
		ErrorTypeStructural, ErrorTypeUndefinedArgument, ErrorTypeAmbiguousArgument,
		ErrorTypeMissingRequired, ErrorTypeCardinality, ErrorTypeUnnamedDisallowed,
		ErrorTypeCyclicArgsFile, ErrorTypeArgsFile,
	} {
		e.byType[t] = d.MisusageError
	}
	e.byType[ErrorTypeValueConversion] = d.ValidationError
	e.byType[ErrorTypeBindingConflict] = d.ValidationError
	e.byType[ErrorTypeNotFound] = d.NotFoundError
	e.byType[ErrorTypeInvalidModel] = d.GeneralError
	e.byType[ErrorTypeNoEligibleInitializer] = d.GeneralError
	return e
}

// Resolve converts an error to an exit code.
// Precedence:
//  1. ExitError (requested code)
//  2. the category of the first *ParseError (aggregates included)
//  3. GeneralError
func (e *ExitCodes) Resolve(err error) int {
	if err == nil {
		return e.defaults.Success
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	if errs := ErrorsOf(err); len(errs) > 0 {
		if code, ok := e.byType[errs[0].Type]; ok {
			return code
		}
	}
	return e.defaults.GeneralError
}

// ExitCode resolves err with the stock mapping.
func ExitCode(err error) int {
	return NewExitCodes().Resolve(err)
}
