// Package convert turns raw argument text into typed values for a binding
// target. Converters are tried in a fixed order and the first one that applies
// and succeeds wins.
package convert

import (
	"fmt"
	"os"
	"reflect"
	"regexp"
	"strings"

	snapfs "github.com/dzonerzy/go-snapargs/fs"
	"github.com/dzonerzy/go-snapargs/internal/typeinfo"
)

// Flags are the value flags of the argument being converted.
type Flags struct {
	ExistingDirectory bool
	ReadFileContent   bool
	AssumeHex         bool
	AssumeBase64      bool
}

// Request is one raw value to convert for a target.
type Request struct {
	Value  string
	Target typeinfo.Target
	Flags  Flags
}

// Result is the outcome of one converter attempt. Values hold elements of
// Target.Elem: one per raw value for scalars, zero or more for vectors.
type Result struct {
	Succeeded bool
	Values    []any
}

func success(values ...any) Result {
	return Result{Succeeded: true, Values: values}
}

// Converter is a single conversion strategy.
type Converter interface {
	Name() string
	Applies(req Request) bool
	Convert(req Request) (Result, error)
}

// Chain tries converters in order.
type Chain struct {
	converters []Converter
}

// New builds a chain from converters in priority order.
func New(converters ...Converter) *Chain {
	return &Chain{converters: converters}
}

// Default returns the standard chain: directory, file content, binary, descriptor.
func Default(fsys snapfs.Filesystem) *Chain {
	rest := New(Binary{}, Descriptor{})
	return New(
		&Directory{FS: fsys},
		&FileContent{FS: fsys, Next: rest},
		Binary{},
		Descriptor{},
	)
}

// Converters returns the chain members in priority order.
func (c *Chain) Converters() []Converter {
	return append([]Converter(nil), c.converters...)
}

// Convert runs req through the chain. The first applicable converter that
// reports success wins; a converter error ends the chain. Either way a failure
// is returned as a *ConversionError.
func (c *Chain) Convert(req Request) ([]any, error) {
	for _, conv := range c.converters {
		if !conv.Applies(req) {
			continue
		}
		res, err := conv.Convert(req)
		if err != nil {
			return nil, &ConversionError{Value: req.Value, Type: req.Target.Type, Err: err}
		}
		if res.Succeeded {
			return res.Values, nil
		}
	}
	return nil, &ConversionError{Value: req.Value, Type: req.Target.Type}
}

// ConversionError reports a value no converter could handle.
type ConversionError struct {
	Value string
	Type  reflect.Type
	Err   error
}

const maxValueRunes = 32

func (e *ConversionError) Error() string {
	msg := fmt.Sprintf("cannot convert %q to %s", Truncate(e.Value), e.Type)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConversionError) Unwrap() error { return e.Err }

// Truncate shortens s to 32 runes, marking the cut with an ellipsis.
func Truncate(s string) string {
	runes := []rune(s)
	if len(runes) <= maxValueRunes {
		return s
	}
	return string(runes[:maxValueRunes]) + "…"
}

var (
	dollarVar  = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}|\$([A-Za-z_][A-Za-z0-9_]*)`)
	percentVar = regexp.MustCompile(`%([A-Za-z_][A-Za-z0-9_]*)%`)
)

// ExpandEnv substitutes $VAR, ${VAR} and %VAR% references. Unset variables
// and anything that is not a variable name, such as $5, are left as written.
func ExpandEnv(s string) string {
	if strings.ContainsRune(s, '$') {
		s = dollarVar.ReplaceAllStringFunc(s, func(m string) string {
			name := strings.Trim(m, "${}")
			if v, ok := os.LookupEnv(name); ok {
				return v
			}
			return m
		})
	}
	if strings.ContainsRune(s, '%') {
		s = percentVar.ReplaceAllStringFunc(s, func(m string) string {
			if v, ok := os.LookupEnv(m[1 : len(m)-1]); ok {
				return v
			}
			return m
		})
	}
	return s
}
