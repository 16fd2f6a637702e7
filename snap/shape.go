package snap

import (
	"fmt"
	"reflect"

	"github.com/dzonerzy/go-snapargs/internal/typeinfo"
)

// shapeAdapter builds a vector of the requested type from element values, or
// reports that the type does not accept its shape.
type shapeAdapter struct {
	name  string
	build func(t reflect.Type, elems []reflect.Value) (reflect.Value, bool)
}

// shapeAdapters are tried in order; the first that accepts the type wins.
var shapeAdapters = []shapeAdapter{
	{name: "array", build: buildArray},
	{name: "slice", build: buildSlice},
	{name: "sequence", build: buildSequence},
}

func adaptShape(t reflect.Type, elems []reflect.Value) (reflect.Value, error) {
	for _, adapter := range shapeAdapters {
		if v, ok := adapter.build(t, elems); ok {
			return v, nil
		}
	}
	if t.Kind() == reflect.Array {
		return reflect.Value{}, fmt.Errorf("%s needs exactly %d values, got %d", t, t.Len(), len(elems))
	}
	return reflect.Value{}, fmt.Errorf("no collection shape fits %s", t)
}

func buildArray(t reflect.Type, elems []reflect.Value) (reflect.Value, bool) {
	if t.Kind() != reflect.Array || t.Len() != len(elems) {
		return reflect.Value{}, false
	}
	v := reflect.New(t).Elem()
	for i, e := range elems {
		v.Index(i).Set(e)
	}
	return v, true
}

func buildSlice(t reflect.Type, elems []reflect.Value) (reflect.Value, bool) {
	if t.Kind() != reflect.Slice {
		return reflect.Value{}, false
	}
	v := reflect.MakeSlice(t, len(elems), len(elems))
	for i, e := range elems {
		v.Index(i).Set(e)
	}
	return v, true
}

// buildSequence produces an iter.Seq-shaped function over a private copy of
// elems, so the sequence can be ranged over any number of times.
func buildSequence(t reflect.Type, elems []reflect.Value) (reflect.Value, bool) {
	if _, ok := typeinfo.SeqElem(t); !ok {
		return reflect.Value{}, false
	}
	values := append([]reflect.Value(nil), elems...)
	fn := reflect.MakeFunc(t, func(args []reflect.Value) []reflect.Value {
		yield := args[0]
		for _, v := range values {
			if !yield.Call([]reflect.Value{v})[0].Bool() {
				break
			}
		}
		return nil
	})
	return fn, true
}
