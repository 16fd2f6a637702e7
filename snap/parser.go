package snap

import (
	"errors"
	"fmt"
	"os"

	"github.com/kballard/go-shellquote"

	snapfs "github.com/dzonerzy/go-snapargs/fs"
	"github.com/dzonerzy/go-snapargs/internal/argsfile"
	"github.com/dzonerzy/go-snapargs/internal/convert"
	snapio "github.com/dzonerzy/go-snapargs/io"
)

// Parser parses argument lists against one model. It holds no per-parse
// state, so a single Parser may be used from many goroutines.
type Parser struct {
	model       *ParseModel
	fsys        snapfs.Filesystem
	programPath string
	logger      *snapio.Logger
	chain       *convert.Chain
}

// ParserOption configures a Parser.
type ParserOption func(*Parser)

// WithFilesystem sets the filesystem used for args files, existence checks
// and file-backed conversions. Defaults to the OS filesystem.
func WithFilesystem(fsys snapfs.Filesystem) ParserOption {
	return func(p *Parser) { p.fsys = fsys }
}

// WithProgramPath sets the string recognised as the program's own path.
// Defaults to os.Args[0]; an empty path disables detection.
func WithProgramPath(path string) ParserOption {
	return func(p *Parser) { p.programPath = path }
}

// WithLogger traces parse phases at debug level and reports warnings.
func WithLogger(logger *snapio.Logger) ParserOption {
	return func(p *Parser) { p.logger = logger }
}

// NewParser validates model and returns a parser for it.
func NewParser(model *ParseModel, opts ...ParserOption) (*Parser, error) {
	if model == nil {
		return nil, NewParseError(ErrorTypeInvalidModel, "model is nil")
	}
	if err := model.Validate(); err != nil {
		return nil, err
	}
	p := &Parser{model: model, fsys: snapfs.OS{}}
	if len(os.Args) > 0 {
		p.programPath = os.Args[0]
	}
	for _, opt := range opts {
		opt(p)
	}
	p.chain = convert.Default(p.fsys)
	return p, nil
}

// Model returns the parser's model.
func (p *Parser) Model() *ParseModel { return p.model }

// Parse runs the full pipeline over args. Validation problems are reported
// together: a single *ParseError, or an *AggregateError when there are several.
func (p *Parser) Parse(args []string) (*ParseResult, error) {
	expanded, err := argsfile.Collect(args, p.model.ArgsFileDelimiter, p.fsys)
	if err != nil {
		return nil, argsFileError(err)
	}
	p.debug("expanded %d arguments into %d", len(args), len(expanded))

	tokens := Tokenize(expanded, p.programPath, p.model.Delimiters)
	groups, err := GroupTokens(tokens)
	if err != nil {
		return nil, err
	}
	p.debug("grouped %d tokens into %d groups", len(tokens), len(groups))

	fixed := applyFixups(groups, p.model)
	if len(fixed) != len(groups) {
		p.debug("fixups rewrote %d groups into %d", len(groups), len(fixed))
	}

	res := Resolve(fixed, p.model)
	errs, warnings := Validate(res, p.model, p.fsys)
	if len(errs) > 0 {
		p.debug("validation found %d errors", len(errs))
		return nil, combine(errs)
	}
	for _, w := range warnings {
		p.warn(w)
	}
	p.debug("resolved %d arguments", len(res.Matches))

	return &ParseResult{
		model:      p.model,
		resolution: res,
		warnings:   warnings,
		chain:      p.chain,
	}, nil
}

// ParseLine splits line with POSIX shell quoting rules and parses the words.
func (p *Parser) ParseLine(line string) (*ParseResult, error) {
	words, err := shellquote.Split(line)
	if err != nil {
		return nil, NewParseError(ErrorTypeStructural, fmt.Sprintf("cannot split command line: %v", err)).
			WithCause(err)
	}
	return p.Parse(words)
}

func argsFileError(err error) error {
	var cycle *argsfile.CycleError
	if errors.As(err, &cycle) {
		return NewParseError(ErrorTypeCyclicArgsFile, cycle.Error()).
			WithValues(cycle.Path).
			WithCause(err)
	}
	var read *argsfile.ReadError
	if errors.As(err, &read) {
		return NewParseError(ErrorTypeArgsFile, read.Error()).
			WithValues(read.Path).
			WithCause(err)
	}
	return NewParseError(ErrorTypeArgsFile, err.Error()).WithCause(err)
}

func (p *Parser) debug(format string, args ...any) {
	if p.logger != nil {
		p.logger.Debug(format, args...)
	}
}

func (p *Parser) warn(w *ParseError) {
	if p.logger != nil {
		p.logger.Warning("%s", w.Error())
	}
}
