package snap

import (
	"fmt"
	"reflect"
	"strings"
)

// Initializer is a constructor function plus the argument name of each of its
// parameters, in order. Go keeps no parameter names at run time, so they are
// declared here.
type Initializer struct {
	fn       reflect.Value
	params   []string
	defaults map[string]any
	err      error
}

// NewInitializer wraps fn, which must take exactly len(params) parameters and
// return T or (T, error) for the type it is used to Construct.
func NewInitializer(fn any, params ...string) *Initializer {
	ini := &Initializer{fn: reflect.ValueOf(fn), params: params, defaults: make(map[string]any)}
	if fn == nil || ini.fn.Kind() != reflect.Func {
		ini.err = fmt.Errorf("initializer is %T, not a function", fn)
		return ini
	}
	ft := ini.fn.Type()
	switch {
	case ft.IsVariadic():
		ini.err = fmt.Errorf("initializer %s is variadic", ft)
	case ft.NumIn() != len(params):
		ini.err = fmt.Errorf("initializer %s takes %d parameters but %d names were given", ft, ft.NumIn(), len(params))
	case ft.NumOut() == 2 && ft.Out(1) != errorType, ft.NumOut() == 0, ft.NumOut() > 2:
		ini.err = fmt.Errorf("initializer %s must return T or (T, error)", ft)
	}
	return ini
}

// WithDefault supplies the value used for param when its argument is absent.
func (i *Initializer) WithDefault(param string, v any) *Initializer {
	i.defaults[param] = v
	return i
}

// Params returns the declared parameter names.
func (i *Initializer) Params() []string {
	return append([]string(nil), i.params...)
}

// eligible reports whether every parameter names a model argument or a
// reserved name. Initializers without parameters are never eligible.
func (i *Initializer) eligible(model *ParseModel, out reflect.Type) bool {
	if i.err != nil || len(i.params) == 0 || !i.fn.Type().Out(0).AssignableTo(out) {
		return false
	}
	for _, p := range i.params {
		key := bindingKey(p)
		if isReservedName(key) {
			continue
		}
		if _, ok := model.lookupBindingKey(key); !ok {
			return false
		}
	}
	return true
}

// Construct builds a T by calling the eligible initializer with the most
// parameters; among equally wide initializers the first given wins. Absent
// arguments fall back to the parameter's default, then to its zero value.
func Construct[T any](r *ParseResult, inits ...*Initializer) (T, error) {
	var zero T
	out := reflect.TypeOf((*T)(nil)).Elem()

	for _, ini := range inits {
		if ini != nil && ini.err != nil {
			return zero, NewParseError(ErrorTypeInvalidModel, ini.err.Error()).WithCause(ini.err)
		}
	}

	var chosen *Initializer
	for _, ini := range inits {
		if ini == nil || !ini.eligible(r.model, out) {
			continue
		}
		if chosen == nil || len(ini.params) > len(chosen.params) {
			chosen = ini
		}
	}
	if chosen == nil {
		return zero, NewParseError(ErrorTypeNoEligibleInitializer,
			fmt.Sprintf("no initializer for %s has parameters matching the declared arguments", out))
	}

	args, err := chosen.arguments(r)
	if err != nil {
		return zero, err
	}
	results := chosen.fn.Call(args)
	if len(results) == 2 && !results[1].IsNil() {
		return zero, results[1].Interface().(error)
	}
	v, _ := results[0].Interface().(T)
	return v, nil
}

func (i *Initializer) arguments(r *ParseResult) ([]reflect.Value, error) {
	ft := i.fn.Type()
	args := make([]reflect.Value, len(i.params))
	for n, p := range i.params {
		pt := ft.In(n)
		key := bindingKey(p)

		var (
			v   reflect.Value
			set bool
			err error
		)
		if isReservedName(key) {
			v, set, err = r.reservedValue(key, pt)
		} else if m, ok := r.matchByKey(key); ok {
			v, set, err = bindValue(r.chain, m, pt)
		}
		if err != nil {
			return nil, err
		}
		if !set {
			if v, err = i.fallback(p, pt); err != nil {
				return nil, err
			}
		}
		args[n] = v
	}
	return args, nil
}

func (i *Initializer) fallback(param string, t reflect.Type) (reflect.Value, error) {
	def, ok := i.defaults[param]
	if !ok {
		return reflect.Zero(t), nil
	}
	v, err := coerce(def, t)
	if err != nil {
		return reflect.Value{}, NewParseError(ErrorTypeInvalidModel,
			fmt.Sprintf("default for parameter %s: %v", strings.TrimSpace(param), err)).WithCause(err)
	}
	return v, nil
}
