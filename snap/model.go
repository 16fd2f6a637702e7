package snap

import (
	"fmt"
	"strings"
)

// Cardinality is the number of values an argument accepts.
type Cardinality int

const (
	// Zero arguments are switches and take no values.
	Zero Cardinality = iota
	// ZeroOrMore accepts any number of values.
	ZeroOrMore
	// One requires exactly one value.
	One
	// OneOrMore requires at least one value.
	OneOrMore
)

var cardinalityNames = map[Cardinality]string{
	Zero:       "zero",
	ZeroOrMore: "zero-or-more",
	One:        "one",
	OneOrMore:  "one-or-more",
}

// String returns the document form of c ("zero", "one-or-more", ...).
func (c Cardinality) String() string {
	if name, ok := cardinalityNames[c]; ok {
		return name
	}
	return fmt.Sprintf("cardinality(%d)", int(c))
}

// ParseCardinality is the inverse of Cardinality.String. Underscores are
// accepted in place of dashes.
func ParseCardinality(s string) (Cardinality, error) {
	s = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")
	for c, name := range cardinalityNames {
		if name == s {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown cardinality %q", s)
}

// ValueFlags constrain or reinterpret an argument's values.
type ValueFlags uint8

const (
	// ExistingFile requires every value to name an existing file.
	ExistingFile ValueFlags = 1 << iota
	// ExistingDirectory requires every value to name an existing directory and
	// lets the value expand into that directory's entries.
	ExistingDirectory
	// ReadFileContent substitutes the named file's content for the value.
	ReadFileContent
	// AssumeHex decodes binary targets as hexadecimal.
	AssumeHex
	// AssumeBase64 decodes binary targets as base64.
	AssumeBase64
)

var valueFlagNames = []struct {
	flag ValueFlags
	name string
}{
	{ExistingFile, "existing-file"},
	{ExistingDirectory, "existing-directory"},
	{ReadFileContent, "read-file-content"},
	{AssumeHex, "assume-hex"},
	{AssumeBase64, "assume-base64"},
}

// Has reports whether every bit of flag is set.
func (f ValueFlags) Has(flag ValueFlags) bool {
	return f&flag == flag
}

func (f ValueFlags) String() string {
	if f == 0 {
		return "none"
	}
	var parts []string
	for _, vf := range valueFlagNames {
		if f.Has(vf.flag) {
			parts = append(parts, vf.name)
		}
	}
	return strings.Join(parts, "|")
}

// ParseValueFlag maps a document flag name ("existing-file") to its bit.
func ParseValueFlag(s string) (ValueFlags, error) {
	s = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")
	for _, vf := range valueFlagNames {
		if vf.name == s {
			return vf.flag, nil
		}
	}
	return 0, fmt.Errorf("unknown value flag %q", s)
}

// MatchMode selects how a supplied name is compared with declared names.
type MatchMode int

const (
	// MatchStem accepts any prefix of a declared name.
	MatchStem MatchMode = iota
	// MatchExact requires the whole declared name.
	MatchExact
)

func (m MatchMode) String() string {
	if m == MatchExact {
		return "exact"
	}
	return "stem"
}

// ParseMatchMode parses "exact" or "stem".
func ParseMatchMode(s string) (MatchMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "exact":
		return MatchExact, nil
	case "stem", "":
		return MatchStem, nil
	}
	return 0, fmt.Errorf("unknown matching mode %q", s)
}

// Argument is one declared argument of a model.
type Argument struct {
	Names       []string // first is canonical
	Cardinality Cardinality
	Required    bool
	Flags       ValueFlags
	Description string
}

// Name returns the canonical name.
func (a *Argument) Name() string {
	if len(a.Names) == 0 {
		return ""
	}
	return a.Names[0]
}

func (a *Argument) validate() error {
	if len(a.Names) == 0 {
		return NewParseError(ErrorTypeInvalidModel, "argument has no names")
	}
	for _, name := range a.Names {
		if stripDashes(name) == "" {
			return NewParseError(ErrorTypeInvalidModel,
				fmt.Sprintf("argument %q has an empty name", a.Name())).WithArgument(a.Name())
		}
	}
	if _, ok := cardinalityNames[a.Cardinality]; !ok {
		return NewParseError(ErrorTypeInvalidModel,
			fmt.Sprintf("argument %q has invalid cardinality %d", a.Name(), a.Cardinality)).WithArgument(a.Name())
	}
	if a.Flags.Has(AssumeHex | AssumeBase64) {
		return NewParseError(ErrorTypeInvalidModel,
			fmt.Sprintf("argument %q cannot assume both hex and base64", a.Name())).WithArgument(a.Name())
	}
	if a.Flags.Has(ExistingFile | ExistingDirectory) {
		return NewParseError(ErrorTypeInvalidModel,
			fmt.Sprintf("argument %q cannot require both an existing file and an existing directory", a.Name())).
			WithArgument(a.Name())
	}
	return nil
}

// ParseModel is the full declared argument set plus parse options. A model is
// immutable once built and may be shared between parsers.
type ParseModel struct {
	Arguments         []*Argument
	Delimiters        []rune // characters introducing an argument name
	CaseSensitive     bool
	Matching          MatchMode
	AllowUnnamed      bool
	ArgsFileDelimiter rune // 0 disables args files
}

// Validate checks every argument and rejects names declared twice.
func (m *ParseModel) Validate() error {
	if len(m.Delimiters) == 0 {
		return NewParseError(ErrorTypeInvalidModel, "model declares no argument delimiters")
	}
	if m.ArgsFileDelimiter != 0 && m.isDelimiter(m.ArgsFileDelimiter) {
		return NewParseError(ErrorTypeInvalidModel,
			fmt.Sprintf("args file delimiter %q is also an argument delimiter", m.ArgsFileDelimiter))
	}

	seen := make(map[string]*Argument)
	for _, arg := range m.Arguments {
		if arg == nil {
			return NewParseError(ErrorTypeInvalidModel, "model contains a nil argument")
		}
		if err := arg.validate(); err != nil {
			return err
		}
		for _, name := range arg.Names {
			key := normalizeName(name, m.CaseSensitive)
			if prev, dup := seen[key]; dup {
				return NewParseError(ErrorTypeInvalidModel,
					fmt.Sprintf("argument name %q is declared by both %q and %q", name, prev.Name(), arg.Name())).
					WithArgument(name)
			}
			seen[key] = arg
		}
	}
	return nil
}

func (m *ParseModel) isDelimiter(r rune) bool {
	for _, d := range m.Delimiters {
		if d == r {
			return true
		}
	}
	return false
}

// display renders name the way a user would type it.
func (m *ParseModel) display(name string) string {
	if len(m.Delimiters) == 0 {
		return name
	}
	return string(m.Delimiters[0]) + name
}

// Names returns every declared name in declaration order.
func (m *ParseModel) Names() []string {
	var names []string
	for _, arg := range m.Arguments {
		names = append(names, arg.Names...)
	}
	return names
}

// Lookup returns the argument declaring name, compared exactly under the
// model's case sensitivity.
func (m *ParseModel) Lookup(name string) (*Argument, bool) {
	for _, arg := range m.Arguments {
		if IsMatch(name, arg.Names, MatchExact, m.CaseSensitive) {
			return arg, true
		}
	}
	return nil, false
}

// lookupBindingKey is Lookup for field and parameter names, which ignore '_'
// and ':' as well as '-'.
func (m *ParseModel) lookupBindingKey(key string) (*Argument, bool) {
	key = normalizeName(bindingKey(key), m.CaseSensitive)
	for _, arg := range m.Arguments {
		for _, name := range arg.Names {
			if normalizeName(bindingKey(name), m.CaseSensitive) == key {
				return arg, true
			}
		}
	}
	return nil, false
}
