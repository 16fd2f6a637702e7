// Package typeinfo classifies binding targets as scalar or vector shaped and
// extracts their element type. Used by the converter chain and both binders.
package typeinfo

import (
	"encoding"
	"encoding/json"
	"reflect"

	"gopkg.in/yaml.v3"
)

var (
	boolType            = reflect.TypeOf(false)
	textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()

	documentTypes = map[reflect.Type]bool{
		reflect.TypeOf(yaml.Node{}):         true,
		reflect.TypeOf(json.RawMessage{}):   true,
		reflect.TypeOf(map[string]any{}):    true,
		reflect.TypeOf(map[string]string{}): true,
	}
)

// Target describes a requested result type.
type Target struct {
	Type       reflect.Type // as declared
	Elem       reflect.Type // vector element type, or the effective scalar type
	IsVector   bool
	IsNullable bool
}

// Analyze computes the Target for t.
func Analyze(t reflect.Type) Target {
	target := Target{Type: t, Elem: t}
	effective := t
	if t.Kind() == reflect.Pointer && !IsDocument(t) {
		target.IsNullable = true
		effective = t.Elem()
		target.Elem = effective
	}
	if elem, ok := vectorElem(effective); ok {
		target.IsVector = true
		target.Elem = elem
	}
	return target
}

// Effective returns the declared type with one level of nullability removed.
func (t Target) Effective() reflect.Type {
	if t.IsNullable {
		return t.Type.Elem()
	}
	return t.Type
}

// IsByteVector reports whether the target is a sequence of bytes.
func (t Target) IsByteVector() bool {
	return t.IsVector && t.Elem.Kind() == reflect.Uint8
}

func vectorElem(t reflect.Type) (reflect.Type, bool) {
	if t.Kind() == reflect.String || IsDocument(t) || IsTextUnmarshaler(t) {
		return nil, false
	}
	if elem, ok := SeqElem(t); ok {
		return elem, true
	}
	if t.Kind() == reflect.Slice || t.Kind() == reflect.Array {
		return t.Elem(), true
	}
	return nil, false
}

// IsDocument reports whether t is a structured-document type. Documents are
// always scalar even when their representation is a sequence.
func IsDocument(t reflect.Type) bool {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return documentTypes[t]
}

// IsTextUnmarshaler reports whether *t (or t) knows how to parse itself.
func IsTextUnmarshaler(t reflect.Type) bool {
	return t.Implements(textUnmarshalerType) || reflect.PointerTo(t).Implements(textUnmarshalerType)
}

// SeqElem reports whether t has the shape func(yield func(T) bool), which is
// how iter.Seq[T] is declared, and returns T.
func SeqElem(t reflect.Type) (reflect.Type, bool) {
	if t.Kind() != reflect.Func || t.NumIn() != 1 || t.NumOut() != 0 || t.IsVariadic() {
		return nil, false
	}
	yield := t.In(0)
	if yield.Kind() != reflect.Func || yield.NumIn() != 1 || yield.NumOut() != 1 || yield.Out(0) != boolType {
		return nil, false
	}
	return yield.In(0), true
}

// SeqOf returns the unnamed func type underlying iter.Seq[elem].
func SeqOf(elem reflect.Type) reflect.Type {
	yield := reflect.FuncOf([]reflect.Type{elem}, []reflect.Type{boolType}, false)
	return reflect.FuncOf([]reflect.Type{yield}, nil, false)
}
