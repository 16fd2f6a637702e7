package snap

// ModelBuilder declares a ParseModel fluently:
//
//	model, err := snap.NewModel().
//		Arg("Files", "f").OneOrMore().Required().ExistingFile().Back().
//		Arg("Recurse").Back().
//		Build()
type ModelBuilder struct {
	model *ParseModel
}

// NewModel starts a model with '-' and '/' delimiters, case-insensitive stem
// matching, unnamed values allowed and args files disabled.
//
// With '/' as a delimiter any value starting with a slash, such as the POSIX
// path /tmp/work, is read as an argument name. Models that take absolute
// paths on POSIX should call Delimiters('-').
func NewModel() *ModelBuilder {
	return &ModelBuilder{model: &ParseModel{
		Delimiters:   []rune{'-', '/'},
		Matching:     MatchStem,
		AllowUnnamed: true,
	}}
}

// Arg declares an argument with a canonical name and optional aliases. New
// arguments are switches (Zero cardinality) until told otherwise.
func (b *ModelBuilder) Arg(name string, aliases ...string) *ArgBuilder {
	arg := &Argument{Names: append([]string{name}, aliases...), Cardinality: Zero}
	b.model.Arguments = append(b.model.Arguments, arg)
	return &ArgBuilder{arg: arg, parent: b}
}

// Delimiters replaces the characters that introduce argument names.
func (b *ModelBuilder) Delimiters(delims ...rune) *ModelBuilder {
	b.model.Delimiters = append([]rune(nil), delims...)
	return b
}

// CaseSensitive controls name comparison.
func (b *ModelBuilder) CaseSensitive(enabled bool) *ModelBuilder {
	b.model.CaseSensitive = enabled
	return b
}

// Matching selects exact or stem matching.
func (b *ModelBuilder) Matching(mode MatchMode) *ModelBuilder {
	b.model.Matching = mode
	return b
}

// AllowUnnamed controls whether values without an argument name are accepted.
func (b *ModelBuilder) AllowUnnamed(enabled bool) *ModelBuilder {
	b.model.AllowUnnamed = enabled
	return b
}

// ArgsFile enables "@file" expansion with the given delimiter; 0 disables it.
func (b *ModelBuilder) ArgsFile(delim rune) *ModelBuilder {
	b.model.ArgsFileDelimiter = delim
	return b
}

// Build validates and returns the model. The builder must not be used after.
func (b *ModelBuilder) Build() (*ParseModel, error) {
	if err := b.model.Validate(); err != nil {
		return nil, err
	}
	return b.model, nil
}

// MustBuild is Build that panics on an invalid model, for package-level
// declarations.
func (b *ModelBuilder) MustBuild() *ParseModel {
	model, err := b.Build()
	if err != nil {
		panic(err)
	}
	return model
}

// ArgBuilder configures one argument.
type ArgBuilder struct {
	arg    *Argument
	parent *ModelBuilder
}

// Zero makes the argument a switch that takes no values.
func (b *ArgBuilder) Zero() *ArgBuilder { return b.cardinality(Zero) }

// ZeroOrMore accepts any number of values.
func (b *ArgBuilder) ZeroOrMore() *ArgBuilder { return b.cardinality(ZeroOrMore) }

// One requires exactly one value.
func (b *ArgBuilder) One() *ArgBuilder { return b.cardinality(One) }

// OneOrMore requires at least one value.
func (b *ArgBuilder) OneOrMore() *ArgBuilder { return b.cardinality(OneOrMore) }

func (b *ArgBuilder) cardinality(c Cardinality) *ArgBuilder {
	b.arg.Cardinality = c
	return b
}

// Required marks the argument as required.
func (b *ArgBuilder) Required() *ArgBuilder {
	b.arg.Required = true
	return b
}

// ExistingFile requires each value to name an existing file.
func (b *ArgBuilder) ExistingFile() *ArgBuilder { return b.flag(ExistingFile) }

// ExistingDirectory requires each value to name an existing directory.
func (b *ArgBuilder) ExistingDirectory() *ArgBuilder { return b.flag(ExistingDirectory) }

// ReadFileContent substitutes file content for each value when binding.
func (b *ArgBuilder) ReadFileContent() *ArgBuilder { return b.flag(ReadFileContent) }

// AssumeHex decodes binary values as hexadecimal.
func (b *ArgBuilder) AssumeHex() *ArgBuilder { return b.flag(AssumeHex) }

// AssumeBase64 decodes binary values as base64.
func (b *ArgBuilder) AssumeBase64() *ArgBuilder { return b.flag(AssumeBase64) }

func (b *ArgBuilder) flag(f ValueFlags) *ArgBuilder {
	b.arg.Flags |= f
	return b
}

// Description sets the help text.
func (b *ArgBuilder) Description(desc string) *ArgBuilder {
	b.arg.Description = desc
	return b
}

// Back returns to the model builder.
func (b *ArgBuilder) Back() *ModelBuilder {
	return b.parent
}
