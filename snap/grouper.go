package snap

import (
	"fmt"
	"strings"
)

// UnnamedSentinel is the key text of a group holding values that follow no
// argument name. It cannot be typed on a command line.
const UnnamedSentinel = "\x00unnamed"

// Group is an argument name (or the program path) with the values that
// followed it.
type Group struct {
	Key    Token
	Values []Token
}

func unnamedGroup(values []Token) Group {
	return Group{Key: Token{Kind: TokenArgumentName, Text: UnnamedSentinel}, Values: values}
}

// IsUnnamed reports whether g is a synthetic unnamed-values group.
func (g Group) IsUnnamed() bool {
	return g.Key.Kind == TokenArgumentName && g.Key.Text == UnnamedSentinel
}

// IsProgramPath reports whether g is keyed by the program path.
func (g Group) IsProgramPath() bool {
	return g.Key.Kind == TokenProgramPath
}

// IsNamed reports whether g is keyed by a user-supplied argument name.
func (g Group) IsNamed() bool {
	return !g.IsUnnamed() && !g.IsProgramPath()
}

// ValueTexts returns the values as strings.
func (g Group) ValueTexts() []string {
	texts := make([]string, len(g.Values))
	for i, v := range g.Values {
		texts[i] = v.Text
	}
	return texts
}

func (g Group) String() string {
	key := g.Key.Text
	switch {
	case g.IsUnnamed():
		key = "<unnamed>"
	case g.IsProgramPath():
		key = "<program " + key + ">"
	}
	if len(g.Values) == 0 {
		return key
	}
	return fmt.Sprintf("%s [%s]", key, strings.Join(g.ValueTexts(), " "))
}

// GroupTokens folds tokens into groups in a single pass. Values preceding the
// first name form an unnamed group. A program path anywhere but first is a
// structural error.
func GroupTokens(tokens []Token) ([]Group, error) {
	var (
		groups  []Group
		current *Token
		pending []Token
	)
	flush := func() {
		switch {
		case current != nil:
			groups = append(groups, Group{Key: *current, Values: pending})
		case len(pending) > 0:
			groups = append(groups, unnamedGroup(pending))
		}
		current, pending = nil, nil
	}

	for i, tok := range tokens {
		switch tok.Kind {
		case TokenProgramPath:
			if i != 0 {
				return nil, NewParseError(ErrorTypeStructural,
					fmt.Sprintf("program path %q must be the first argument, found at position %d", tok.Text, i)).
					WithValues(tok.Text)
			}
			current = &tokens[i]
		case TokenArgumentName:
			flush()
			current = &tokens[i]
		default:
			pending = append(pending, tok)
		}
	}
	flush()
	return groups, nil
}
