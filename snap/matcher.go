package snap

import (
	"strings"

	"golang.org/x/text/cases"
)

// IsMatch reports whether candidate names one of names. Dashes are ignored on
// both sides. In MatchStem mode candidate may be any prefix of a declared name.
func IsMatch(candidate string, names []string, mode MatchMode, caseSensitive bool) bool {
	c := normalizeName(candidate, caseSensitive)
	if c == "" {
		return false
	}
	for _, name := range names {
		n := normalizeName(name, caseSensitive)
		if n == c || (mode == MatchStem && strings.HasPrefix(n, c)) {
			return true
		}
	}
	return false
}

func stripDashes(s string) string {
	return strings.ReplaceAll(s, "-", "")
}

func normalizeName(s string, caseSensitive bool) string {
	s = stripDashes(s)
	if caseSensitive {
		return s
	}
	return cases.Fold().String(s)
}

// matchingArguments returns every model argument that name matches. An exact
// match on a declared name wins over stem matches so a full name is never
// ambiguous with a longer one it prefixes.
func matchingArguments(model *ParseModel, name string) []*Argument {
	var matches []*Argument
	for _, arg := range model.Arguments {
		if IsMatch(name, arg.Names, model.Matching, model.CaseSensitive) {
			matches = append(matches, arg)
		}
	}
	if len(matches) > 1 && model.Matching == MatchStem {
		for _, arg := range matches {
			if IsMatch(name, arg.Names, MatchExact, model.CaseSensitive) {
				return []*Argument{arg}
			}
		}
	}
	return matches
}
