package snap

import "unicode/utf8"

// TokenKind classifies a raw argument string.
type TokenKind int

const (
	TokenValue TokenKind = iota
	TokenArgumentName
	TokenProgramPath
)

func (k TokenKind) String() string {
	switch k {
	case TokenArgumentName:
		return "name"
	case TokenProgramPath:
		return "program"
	default:
		return "value"
	}
}

// Token is one classified argument. Names have their delimiter stripped.
type Token struct {
	Kind TokenKind
	Text string
}

// Tokenize classifies each argument independently. A string equal to
// programPath is the program path. A string starting with exactly one
// delimiter (not two, so "--x" stays a value) is an argument name. Anything
// else, including a lone delimiter, is a value. Empty strings are dropped.
func Tokenize(args []string, programPath string, delims []rune) []Token {
	tokens := make([]Token, 0, len(args))
	for _, arg := range args {
		if arg == "" {
			continue
		}
		if programPath != "" && arg == programPath {
			tokens = append(tokens, Token{Kind: TokenProgramPath, Text: arg})
			continue
		}
		if name, ok := argumentName(arg, delims); ok {
			tokens = append(tokens, Token{Kind: TokenArgumentName, Text: name})
			continue
		}
		tokens = append(tokens, Token{Kind: TokenValue, Text: arg})
	}
	return tokens
}

func argumentName(arg string, delims []rune) (string, bool) {
	first, size := utf8.DecodeRuneInString(arg)
	if !containsRune(delims, first) {
		return "", false
	}
	rest := arg[size:]
	if rest == "" {
		return "", false
	}
	if second, _ := utf8.DecodeRuneInString(rest); containsRune(delims, second) {
		return "", false
	}
	return rest, true
}

func containsRune(set []rune, r rune) bool {
	for _, c := range set {
		if c == r {
			return true
		}
	}
	return false
}
