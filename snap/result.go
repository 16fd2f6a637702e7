package snap

import (
	"fmt"
	"reflect"

	"github.com/dzonerzy/go-snapargs/internal/convert"
)

// ParseResult is a successful parse. Lookups accept any declared name of an
// argument, compared exactly under the model's case sensitivity.
type ParseResult struct {
	model      *ParseModel
	resolution *Resolution
	warnings   []*ParseError
	chain      *convert.Chain
}

// Resolution returns the full match report.
func (r *ParseResult) Resolution() *Resolution { return r.resolution }

// Model returns the model the arguments were parsed against.
func (r *ParseResult) Model() *ParseModel { return r.model }

func (r *ParseResult) match(name string) (Match, bool) {
	arg, ok := r.model.Lookup(name)
	if !ok {
		return Match{}, false
	}
	return r.resolution.MatchFor(arg)
}

// Has reports whether the named argument was supplied.
func (r *ParseResult) Has(name string) bool {
	_, ok := r.match(name)
	return ok
}

// Value returns the first value of the named argument.
func (r *ParseResult) Value(name string) (string, bool) {
	m, ok := r.match(name)
	if !ok || len(m.Group.Values) == 0 {
		return "", false
	}
	return m.Group.Values[0].Text, true
}

// Values returns every value of the named argument.
func (r *ParseResult) Values(name string) ([]string, bool) {
	m, ok := r.match(name)
	if !ok {
		return nil, false
	}
	return m.Values(), true
}

// MustGetValue returns the first value of the named argument or defaultValue.
func (r *ParseResult) MustGetValue(name, defaultValue string) string {
	if v, ok := r.Value(name); ok {
		return v
	}
	return defaultValue
}

// UnnamedValues returns every value that followed no argument name.
func (r *ParseResult) UnnamedValues() []string {
	return r.resolution.UnnamedValues()
}

// Warnings returns the non-fatal report, or nil when the parse was clean.
func (r *ParseResult) Warnings() error {
	if len(r.warnings) == 0 {
		return nil
	}
	return &Warnings{Items: r.warnings}
}

// Get converts the named argument's values to T. An argument that was not
// supplied yields T's zero value and no error.
func Get[T any](r *ParseResult, name string) (T, error) {
	var zero T
	arg, ok := r.model.Lookup(name)
	if !ok {
		return zero, NewParseError(ErrorTypeUndefinedArgument,
			fmt.Sprintf("argument '%s' is not declared", r.model.display(name))).WithArgument(name)
	}
	m, ok := r.resolution.MatchFor(arg)
	if !ok {
		return zero, nil
	}
	v, set, err := bindValue(r.chain, m, reflect.TypeOf((*T)(nil)).Elem())
	if err != nil || !set {
		return zero, err
	}
	return v.Interface().(T), nil
}
