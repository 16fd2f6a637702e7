package convert

import (
	"encoding"
	"fmt"
	"math"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/dzonerzy/go-snapargs/internal/typeinfo"
)

var (
	durationType = reflect.TypeOf(time.Duration(0))
	timeType     = reflect.TypeOf(time.Time{})
	urlType      = reflect.TypeOf(url.URL{})
)

// Descriptor parses text through the element type's standard textual form.
type Descriptor struct{}

func (Descriptor) Name() string { return "descriptor" }

func (Descriptor) Applies(req Request) bool {
	return req.Target.Elem != nil
}

func (Descriptor) Convert(req Request) (Result, error) {
	v, err := ParseText(req.Value, req.Target.Elem)
	if err != nil {
		return Result{}, err
	}
	return success(v), nil
}

// ParseText converts s to a value of type t.
func ParseText(s string, t reflect.Type) (any, error) {
	switch t {
	case durationType:
		return parseDuration(s)
	case timeType:
		return parseTime(s)
	case urlType:
		u, err := url.Parse(s)
		if err != nil {
			return nil, err
		}
		return *u, nil
	}
	if typeinfo.IsDocument(t) {
		return decodeDocument(s, inlineFormat(s), t)
	}
	if typeinfo.IsTextUnmarshaler(t) {
		return unmarshalText(s, t)
	}
	if t.Kind() == reflect.Pointer {
		inner, err := ParseText(s, t.Elem())
		if err != nil {
			return nil, err
		}
		p := reflect.New(t.Elem())
		p.Elem().Set(reflect.ValueOf(inner))
		return p.Interface(), nil
	}

	v := reflect.New(t).Elem()
	switch t.Kind() {
	case reflect.String:
		v.SetString(s)
	case reflect.Bool:
		b, err := parseBool(s)
		if err != nil {
			return nil, err
		}
		v.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(s, intBase(s), t.Bits())
		if err != nil {
			return nil, err
		}
		v.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		n, err := strconv.ParseUint(s, intBase(s), t.Bits())
		if err != nil {
			return nil, err
		}
		v.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(s, t.Bits())
		if err != nil {
			return nil, err
		}
		v.SetFloat(f)
	case reflect.Complex64, reflect.Complex128:
		c, err := strconv.ParseComplex(s, t.Bits())
		if err != nil {
			return nil, err
		}
		v.SetComplex(c)
	case reflect.Interface:
		if !stringType.AssignableTo(t) {
			return nil, fmt.Errorf("unsupported type %s", t)
		}
		v.Set(reflect.ValueOf(s))
	default:
		return nil, fmt.Errorf("unsupported type %s", t)
	}
	return v.Interface(), nil
}

func unmarshalText(s string, t reflect.Type) (any, error) {
	if t.Kind() == reflect.Pointer {
		p := reflect.New(t.Elem())
		if err := p.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(s)); err != nil {
			return nil, err
		}
		return p.Interface(), nil
	}
	p := reflect.New(t)
	if err := p.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(s)); err != nil {
		return nil, err
	}
	return p.Elem().Interface(), nil
}

// inlineFormat guesses JSON for text that looks like a JSON object or array.
func inlineFormat(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "{") || strings.HasPrefix(s, "[") {
		return "json"
	}
	return "yaml"
}

// intBase honours 0x, 0o and 0b prefixes but reads a bare leading zero as
// decimal.
func intBase(s string) int {
	s = strings.TrimLeft(s, "+-")
	if len(s) > 2 && s[0] == '0' && strings.ContainsRune("xXoObB", rune(s[1])) {
		return 0
	}
	return 10
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "t", "yes", "y", "1", "on":
		return true, nil
	case "false", "f", "no", "n", "0", "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean value: %s", s)
	}
}

var timeLayouts = []string{time.RFC3339Nano, time.DateTime, time.DateOnly}

func parseTime(s string) (time.Time, error) {
	var err error
	for _, layout := range timeLayouts {
		t, perr := time.Parse(layout, s)
		if perr == nil {
			return t, nil
		}
		err = perr
	}
	return time.Time{}, err
}

// parseDuration accepts "MM:SS", "HH:MM:SS", whole days/weeks/months/years
// ("2d", "1w", "3M", "1y") and Go duration syntax.
func parseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, fmt.Errorf("empty duration")
	}
	if strings.Contains(s, ":") {
		return parseColonDuration(s)
	}
	if d, ok, err := parseExtendedDuration(s); ok {
		return d, err
	}
	return time.ParseDuration(s)
}

func parseColonDuration(s string) (time.Duration, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("invalid colon duration format: %s", s)
	}
	units := []time.Duration{time.Minute, time.Second}
	if len(parts) == 3 {
		units = []time.Duration{time.Hour, time.Minute, time.Second}
	}
	var d time.Duration
	for i, part := range parts {
		n, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid duration component %q in %s", part, s)
		}
		v, ok := scaleDuration(n, units[i])
		if !ok || (v > 0 && d > math.MaxInt64-v) || (v < 0 && d < math.MinInt64-v) {
			return 0, fmt.Errorf("duration out of range: %s", s)
		}
		d += v
	}
	return d, nil
}

// parseExtendedDuration reads day, week, month and year suffixes. ok reports
// whether s has that form at all.
func parseExtendedDuration(s string) (d time.Duration, ok bool, err error) {
	if len(s) < 2 {
		return 0, false, nil
	}
	var unit time.Duration
	switch s[len(s)-1] {
	case 'd', 'D':
		unit = 24 * time.Hour
	case 'w', 'W':
		unit = 7 * 24 * time.Hour
	case 'M':
		unit = 30 * 24 * time.Hour
	case 'y', 'Y':
		unit = 365 * 24 * time.Hour
	default:
		return 0, false, nil
	}
	n, err := strconv.ParseInt(s[:len(s)-1], 10, 64)
	if err != nil {
		return 0, false, nil
	}
	d, inRange := scaleDuration(n, unit)
	if !inRange {
		return 0, true, fmt.Errorf("duration out of range: %s", s)
	}
	return d, true, nil
}

func scaleDuration(n int64, unit time.Duration) (time.Duration, bool) {
	if n > math.MaxInt64/int64(unit) || n < math.MinInt64/int64(unit) {
		return 0, false
	}
	return time.Duration(n) * unit, true
}
