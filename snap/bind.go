package snap

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/dzonerzy/go-snapargs/internal/convert"
	"github.com/dzonerzy/go-snapargs/internal/typeinfo"
)

// Reserved field and parameter names that receive parse metadata instead of
// an argument's values.
const (
	ReservedUnnamedValues         = "UnnamedValues"
	ReservedLeadingUnnamedValues  = "LeadingUnnamedValues"
	ReservedTrailingUnnamedValues = "TrailingUnnamedValues"
	ReservedParseWarnings         = "ParseWarnings"
)

var (
	errorType    = reflect.TypeOf((*error)(nil)).Elem()
	warningsType = reflect.TypeOf((*Warnings)(nil))
)

// Bind creates a new T and fills its exported fields from r. A field binds to
// the argument declaring its name, taken from an `arg:"name"` tag or else the
// field name with '-', '_' and ':' removed. `arg:"-"` skips the field.
//
// Switch arguments supplied without values set bool fields to true; other
// fields without values are left at their zero value. Conversion and binding
// errors stop at the first failing field and no partial result is returned.
func Bind[T any](r *ParseResult) (*T, error) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if t.Kind() != reflect.Struct {
		return nil, NewParseError(ErrorTypeBindingConflict,
			fmt.Sprintf("cannot bind to %s: not a struct", t))
	}
	out := new(T)
	rv := reflect.ValueOf(out).Elem()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		name, ok := fieldBindingName(field)
		if !ok {
			continue
		}
		fv := rv.Field(i)
		if !fv.CanSet() {
			continue
		}

		if isReservedName(name) {
			v, set, err := r.reservedValue(name, field.Type)
			if err != nil {
				return nil, err
			}
			if set {
				fv.Set(v)
			}
			continue
		}

		m, found := r.matchByKey(name)
		if !found {
			continue
		}
		v, set, err := bindValue(r.chain, m, field.Type)
		if err != nil {
			return nil, err
		}
		if set {
			fv.Set(v)
		}
	}
	return out, nil
}

// fieldBindingName returns the binding key for field; false means skip.
func fieldBindingName(field reflect.StructField) (string, bool) {
	if tag, ok := field.Tag.Lookup("arg"); ok {
		tag = strings.TrimSpace(strings.Split(tag, ",")[0])
		if tag == "-" {
			return "", false
		}
		if tag != "" {
			return bindingKey(tag), true
		}
	}
	return bindingKey(field.Name), true
}

var bindingKeyReplacer = strings.NewReplacer("-", "", "_", "", ":", "")

func bindingKey(name string) string {
	return bindingKeyReplacer.Replace(name)
}

func isReservedName(name string) bool {
	switch name {
	case ReservedUnnamedValues, ReservedLeadingUnnamedValues, ReservedTrailingUnnamedValues, ReservedParseWarnings:
		return true
	}
	return false
}

// matchByKey finds the supplied argument declaring key exactly.
func (r *ParseResult) matchByKey(key string) (Match, bool) {
	arg, ok := r.model.lookupBindingKey(key)
	if !ok {
		return Match{}, false
	}
	return r.resolution.MatchFor(arg)
}

// reservedValue produces the value of a reserved name for type t. Unnamed
// values bind only to vector types and warnings only to error or *Warnings;
// other types are left alone.
func (r *ParseResult) reservedValue(name string, t reflect.Type) (reflect.Value, bool, error) {
	if name == ReservedParseWarnings {
		if len(r.warnings) == 0 || (t != errorType && t != warningsType) {
			return reflect.Value{}, false, nil
		}
		return reflect.ValueOf(&Warnings{Items: r.warnings}).Convert(t), true, nil
	}

	var values []string
	switch name {
	case ReservedUnnamedValues:
		values = r.resolution.UnnamedValues()
	case ReservedLeadingUnnamedValues:
		values = r.resolution.LeadingUnnamedValues()
	case ReservedTrailingUnnamedValues:
		values = r.resolution.TrailingUnnamedValues()
	}
	if len(values) == 0 || !typeinfo.Analyze(t).IsVector {
		return reflect.Value{}, false, nil
	}
	return convertValues(r.chain, name, values, 0, t)
}

// bindValue converts a match's values to t.
func bindValue(chain *convert.Chain, m Match, t reflect.Type) (reflect.Value, bool, error) {
	return convertValues(chain, m.Argument.Name(), m.Values(), m.Argument.Flags, t)
}

// convertValues runs raw through the converter chain and adapts the result to
// t. The boolean is false when nothing should be assigned.
func convertValues(chain *convert.Chain, arg string, raw []string, flags ValueFlags, t reflect.Type) (reflect.Value, bool, error) {
	target := typeinfo.Analyze(t)
	effective := target.Effective()

	var v reflect.Value
	if target.IsVector {
		var elems []reflect.Value
		for _, s := range raw {
			converted, err := convertOne(chain, arg, s, flags, target)
			if err != nil {
				return reflect.Value{}, false, err
			}
			for _, c := range converted {
				e, err := coerce(c, target.Elem)
				if err != nil {
					return reflect.Value{}, false, conversionError(arg, s, t, err)
				}
				elems = append(elems, e)
			}
		}
		var err error
		if v, err = adaptShape(effective, elems); err != nil {
			return reflect.Value{}, false, NewParseError(ErrorTypeBindingConflict,
				fmt.Sprintf("argument '%s': %v", arg, err)).WithArgument(arg).WithValues(raw...).WithCause(err)
		}
	} else {
		switch {
		case len(raw) == 0:
			if effective.Kind() != reflect.Bool {
				return reflect.Value{}, false, nil
			}
			v = reflect.ValueOf(true).Convert(effective)
		case len(raw) > 1:
			return reflect.Value{}, false, bindingConflict(arg, raw, t)
		default:
			converted, err := convertOne(chain, arg, raw[0], flags, target)
			if err != nil {
				return reflect.Value{}, false, err
			}
			if len(converted) != 1 {
				return reflect.Value{}, false, bindingConflict(arg, raw, t)
			}
			if v, err = coerce(converted[0], effective); err != nil {
				return reflect.Value{}, false, conversionError(arg, raw[0], t, err)
			}
		}
	}

	if target.IsNullable {
		p := reflect.New(effective)
		p.Elem().Set(v)
		return p, true, nil
	}
	return v, true, nil
}

func convertOne(chain *convert.Chain, arg, raw string, flags ValueFlags, target typeinfo.Target) ([]any, error) {
	values, err := chain.Convert(convert.Request{
		Value:  raw,
		Target: target,
		Flags: convert.Flags{
			ExistingDirectory: flags.Has(ExistingDirectory),
			ReadFileContent:   flags.Has(ReadFileContent),
			AssumeHex:         flags.Has(AssumeHex),
			AssumeBase64:      flags.Has(AssumeBase64),
		},
	})
	if err != nil {
		return nil, conversionError(arg, raw, target.Type, err)
	}
	return values, nil
}

// coerce turns a converted value into exactly type t.
func coerce(value any, t reflect.Type) (reflect.Value, error) {
	rv := reflect.ValueOf(value)
	if !rv.IsValid() {
		return reflect.Zero(t), nil
	}
	if rv.Type().AssignableTo(t) {
		v := reflect.New(t).Elem()
		v.Set(rv)
		return v, nil
	}
	if rv.Kind() == t.Kind() && rv.Type().ConvertibleTo(t) {
		return rv.Convert(t), nil
	}
	return reflect.Value{}, fmt.Errorf("cannot use %s as %s", rv.Type(), t)
}

func conversionError(arg, raw string, t reflect.Type, err error) *ParseError {
	var convErr *convert.ConversionError
	msg := fmt.Sprintf("argument '%s': cannot convert %q to %s", arg, convert.Truncate(raw), t)
	if errors.As(err, &convErr) && convErr.Err != nil {
		msg += ": " + convErr.Err.Error()
	} else if convErr == nil {
		msg += ": " + err.Error()
	}
	return NewParseError(ErrorTypeValueConversion, msg).
		WithArgument(arg).
		WithValues(raw).
		WithCause(err)
}

func bindingConflict(arg string, raw []string, t reflect.Type) *ParseError {
	return NewParseError(ErrorTypeBindingConflict,
		fmt.Sprintf("argument '%s' has %d values but %s holds one", arg, len(raw), t)).
		WithArgument(arg).
		WithValues(raw...)
}
