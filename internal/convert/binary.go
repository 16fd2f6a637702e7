package convert

import (
	"encoding/base64"
	"encoding/hex"
	"errors"
	"reflect"
	"strings"
)

var bytesType = reflect.TypeOf([]byte(nil))

// Binary decodes hex or base64 text into bytes.
type Binary struct{}

func (Binary) Name() string { return "binary" }

func (Binary) Applies(req Request) bool {
	return req.Target.IsByteVector() || req.Target.Elem == bytesType
}

func (Binary) Convert(req Request) (Result, error) {
	var (
		data []byte
		err  error
	)
	switch {
	case req.Flags.AssumeHex:
		data, err = DecodeHex(req.Value)
	case req.Flags.AssumeBase64:
		data, err = DecodeBase64(req.Value)
	case hasHexPreamble(req.Value):
		data, err = DecodeHex(req.Value)
	default:
		data, err = DecodeBase64(req.Value)
	}
	if err != nil {
		return Result{}, err
	}

	if req.Target.Elem == bytesType {
		return success(data), nil
	}
	return success(byteValues(data)...), nil
}

func byteValues(data []byte) []any {
	values := make([]any, len(data))
	for i, b := range data {
		values[i] = b
	}
	return values
}

func hasHexPreamble(s string) bool {
	return len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}

// DecodeHex decodes hex text with an optional 0x preamble. An odd number of
// digits is read as if a leading 0 were present.
func DecodeHex(s string) ([]byte, error) {
	if hasHexPreamble(s) {
		s = s[2:]
	}
	if len(s)%2 == 1 {
		s = "0" + s
	}
	return hex.DecodeString(s)
}

// EncodeHex is the inverse of DecodeHex: lower-case digits with a 0x preamble.
func EncodeHex(data []byte) string {
	return "0x" + hex.EncodeToString(data)
}

var base64Encodings = []*base64.Encoding{
	base64.StdEncoding,
	base64.URLEncoding,
	base64.RawStdEncoding,
	base64.RawURLEncoding,
}

var errBase64 = errors.New("not valid base64")

// DecodeBase64 accepts standard or URL-safe alphabets, padded or not.
func DecodeBase64(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	for _, enc := range base64Encodings {
		if data, err := enc.DecodeString(s); err == nil {
			return data, nil
		}
	}
	return nil, errBase64
}
