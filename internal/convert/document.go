package convert

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

var (
	yamlNodeType   = reflect.TypeOf(yaml.Node{})
	rawMessageType = reflect.TypeOf(json.RawMessage{})
	anyMapType     = reflect.TypeOf(map[string]any{})
	stringMapType  = reflect.TypeOf(map[string]string{})

	errNotObject = errors.New("document is not an object")
)

// decodeDocument parses text as JSON, TOML or YAML (chosen by ext, YAML when
// unknown) into one of the document types.
func decodeDocument(text, ext string, t reflect.Type) (any, error) {
	format := strings.ToLower(strings.TrimPrefix(ext, "."))
	ptr := t.Kind() == reflect.Pointer
	if ptr {
		t = t.Elem()
	}

	var doc any
	switch {
	case t == yamlNodeType && format != "json" && format != "toml":
		var node yaml.Node
		if err := yaml.Unmarshal([]byte(text), &node); err != nil {
			return nil, err
		}
		doc = node
	case t == rawMessageType && format == "json":
		if !json.Valid([]byte(text)) {
			return nil, errors.New("invalid JSON document")
		}
		doc = json.RawMessage(text)
	default:
		generic, err := decodeGeneric(text, format)
		if err != nil {
			return nil, err
		}
		doc, err = fromGeneric(generic, t)
		if err != nil {
			return nil, err
		}
	}

	if ptr {
		v := reflect.New(t)
		v.Elem().Set(reflect.ValueOf(doc))
		return v.Interface(), nil
	}
	return doc, nil
}

func decodeGeneric(text, format string) (any, error) {
	switch format {
	case "json":
		var v any
		err := json.Unmarshal([]byte(text), &v)
		return v, err
	case "toml":
		v := map[string]any{}
		_, err := toml.Decode(text, &v)
		return v, err
	default:
		var v any
		err := yaml.Unmarshal([]byte(text), &v)
		return v, err
	}
}

func fromGeneric(v any, t reflect.Type) (any, error) {
	switch t {
	case yamlNodeType:
		var node yaml.Node
		if err := node.Encode(v); err != nil {
			return nil, err
		}
		return node, nil
	case rawMessageType:
		data, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		return json.RawMessage(data), nil
	case anyMapType:
		m, ok := v.(map[string]any)
		if !ok {
			return nil, errNotObject
		}
		return m, nil
	case stringMapType:
		m, ok := v.(map[string]any)
		if !ok {
			return nil, errNotObject
		}
		out := make(map[string]string, len(m))
		for k, val := range m {
			out[k] = fmt.Sprint(val)
		}
		return out, nil
	}
	return nil, fmt.Errorf("unsupported document type %s", t)
}
