//nolint:testpackage // using package name 'snap' to access unexported fields for testing
package snap

import (
	"errors"
	"fmt"
	"testing"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"misuse", NewParseError(ErrorTypeUndefinedArgument, "x"), 2},
		{"conversion", NewParseError(ErrorTypeValueConversion, "x"), 3},
		{"not found", NewParseError(ErrorTypeNotFound, "x"), 127},
		{"model", NewParseError(ErrorTypeInvalidModel, "x"), 1},
		{
			"aggregate uses first",
			&AggregateError{Errors: []*ParseError{
				NewParseError(ErrorTypeNotFound, "x"),
				NewParseError(ErrorTypeCardinality, "y"),
			}},
			127,
		},
		{"wrapped", fmt.Errorf("parse: %w", NewParseError(ErrorTypeCardinality, "x")), 2},
		{"exit error", &ExitError{Code: 42, Err: errors.New("x")}, 42},
		{"plain", errors.New("x"), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestExitCodesOverrides(t *testing.T) {
	codes := NewExitCodes().
		Default(ExitCodeDefaults{Success: 0, GeneralError: 10, MisusageError: 64, ValidationError: 65, NotFoundError: 66}).
		Define(ErrorTypeMissingRequired, 70)

	if got := codes.Resolve(NewParseError(ErrorTypeAmbiguousArgument, "x")); got != 64 {
		t.Errorf("ambiguous = %d, want 64", got)
	}
	if got := codes.Resolve(NewParseError(ErrorTypeMissingRequired, "x")); got != 70 {
		t.Errorf("missing = %d, want 70", got)
	}
	if got := codes.Resolve(errors.New("x")); got != 10 {
		t.Errorf("general = %d, want 10", got)
	}
}
