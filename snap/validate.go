package snap

import (
	"fmt"
	"strings"

	snapfs "github.com/dzonerzy/go-snapargs/fs"
	"github.com/dzonerzy/go-snapargs/internal/convert"
	"github.com/dzonerzy/go-snapargs/internal/fuzzy"
)

// maxUnnamedGroups is the number of unnamed groups (leading and trailing)
// above which a parse is flagged with a warning.
const maxUnnamedGroups = 2

// Validate checks a resolution exhaustively and returns every error and every
// warning found. It never stops early.
func Validate(res *Resolution, model *ParseModel, fsys snapfs.Filesystem) (errs, warnings []*ParseError) {
	names := model.Names()
	for _, g := range res.Undefined {
		err := NewParseError(ErrorTypeUndefinedArgument,
			fmt.Sprintf("undefined argument '%s'", model.display(g.Key.Text))).
			WithArgument(g.Key.Text).
			WithValues(g.ValueTexts()...)
		if s := fuzzy.Suggest(g.Key.Text, names, model.CaseSensitive); s != "" {
			_ = err.WithSuggestion(model.display(s))
		}
		errs = append(errs, err)
	}

	for _, amb := range res.Ambiguous {
		candidates := make([]string, len(amb.Candidates))
		for i, arg := range amb.Candidates {
			candidates[i] = model.display(arg.Name())
		}
		errs = append(errs, NewParseError(ErrorTypeAmbiguousArgument,
			fmt.Sprintf("ambiguous argument '%s' could be %s",
				model.display(amb.Group.Key.Text), strings.Join(candidates, ", "))).
			WithArgument(amb.Group.Key.Text))
	}

	for _, arg := range res.Missing {
		errs = append(errs, NewParseError(ErrorTypeMissingRequired,
			fmt.Sprintf("missing required argument '%s'", model.display(arg.Name()))).
			WithArgument(arg.Name()))
	}

	for _, m := range res.Matches {
		if err := checkCardinality(m, model); err != nil {
			errs = append(errs, err)
		}
		errs = append(errs, checkExistence(m, model, fsys)...)
	}

	unnamed := res.unnamedGroups()
	if len(unnamed) > 0 && !model.AllowUnnamed {
		values := res.UnnamedValues()
		errs = append(errs, NewParseError(ErrorTypeUnnamedDisallowed,
			fmt.Sprintf("unexpected unnamed values: %s", strings.Join(values, " "))).
			WithValues(values...))
	}
	if len(unnamed) > maxUnnamedGroups {
		warnings = append(warnings, NewParseError(ErrorTypeUnnamedWarning,
			fmt.Sprintf("found %d separate runs of unnamed values; values may be attached to the wrong argument",
				len(unnamed))).
			WithValues(res.UnnamedValues()...))
	}
	return errs, warnings
}

func checkCardinality(m Match, model *ParseModel) *ParseError {
	n := len(m.Group.Values)
	var problem string
	switch m.Argument.Cardinality {
	case Zero:
		if n != 0 {
			problem = fmt.Sprintf("takes no values but got %d", n)
		}
	case One:
		if n != 1 {
			problem = fmt.Sprintf("expects exactly one value but got %d", n)
		}
	case OneOrMore:
		if n == 0 {
			problem = "expects at least one value"
		}
	case ZeroOrMore:
	}
	if problem == "" {
		return nil
	}
	return NewParseError(ErrorTypeCardinality,
		fmt.Sprintf("argument '%s' %s", model.display(m.Argument.Name()), problem)).
		WithArgument(m.Argument.Name()).
		WithValues(m.Values()...)
}

func checkExistence(m Match, model *ParseModel, fsys snapfs.Filesystem) []*ParseError {
	flags := m.Argument.Flags
	wantFile := flags.Has(ExistingFile)
	wantDir := flags.Has(ExistingDirectory)
	if !wantFile && !wantDir {
		return nil
	}

	var errs []*ParseError
	for _, value := range m.Values() {
		path, err := fsys.MakeFullyQualified(convert.ExpandEnv(value))
		exists := err == nil && ((wantFile && fsys.FileExists(path)) || (wantDir && fsys.DirectoryExists(path)))
		if exists {
			continue
		}
		kind := "file"
		if wantDir {
			kind = "directory"
		}
		errs = append(errs, NewParseError(ErrorTypeNotFound,
			fmt.Sprintf("argument '%s': %s not found: %s", model.display(m.Argument.Name()), kind, value)).
			WithArgument(m.Argument.Name()).
			WithValues(value).
			WithCause(err))
	}
	return errs
}
