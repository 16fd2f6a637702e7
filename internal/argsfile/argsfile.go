// Package argsfile expands "@file" tokens into the lines of the named file.
// Used by snap's Parser before tokenizing, when the model enables args files.
package argsfile

import (
	"fmt"
	"iter"
	"strings"
)

// Reader is the part of the filesystem contract the expander needs.
type Reader interface {
	MakeFullyQualified(path string) (string, error)
	ReadAllLines(path string) ([]string, error)
}

// CycleError reports an args file that (directly or indirectly) includes itself.
type CycleError struct {
	Path  string   // fully qualified path that was re-entered
	Chain []string // files open at the time, outermost first
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("cyclic args file reference: %s (via %s)", e.Path, strings.Join(e.Chain, " -> "))
}

// ReadError reports an args file that could not be resolved or read.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("cannot read args file %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// Expand lazily yields args with every token starting with delim replaced by
// the (recursively expanded) lines of the referenced file. A zero delim yields
// args unchanged. The first error ends the sequence.
func Expand(args []string, delim rune, fsys Reader) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		if delim == 0 {
			for _, arg := range args {
				if !yield(arg, nil) {
					return
				}
			}
			return
		}
		e := &expander{delim: string(delim), fsys: fsys, open: make(map[string]bool)}
		e.walk(args, yield)
	}
}

// Collect drains Expand into a slice, stopping at the first error.
func Collect(args []string, delim rune, fsys Reader) ([]string, error) {
	out := make([]string, 0, len(args))
	for arg, err := range Expand(args, delim, fsys) {
		if err != nil {
			return nil, err
		}
		out = append(out, arg)
	}
	return out, nil
}

type expander struct {
	delim string
	fsys  Reader
	open  map[string]bool
	chain []string
}

// walk returns false once the consumer stopped or an error was yielded.
func (e *expander) walk(args []string, yield func(string, error) bool) bool {
	for _, arg := range args {
		if !strings.HasPrefix(arg, e.delim) {
			if !yield(arg, nil) {
				return false
			}
			continue
		}
		if !e.include(strings.TrimPrefix(arg, e.delim), yield) {
			return false
		}
	}
	return true
}

func (e *expander) include(name string, yield func(string, error) bool) bool {
	path, err := e.fsys.MakeFullyQualified(name)
	if err != nil {
		yield("", &ReadError{Path: name, Err: err})
		return false
	}
	if e.open[path] {
		chain := append(append([]string(nil), e.chain...), path)
		yield("", &CycleError{Path: path, Chain: chain})
		return false
	}
	lines, err := e.fsys.ReadAllLines(path)
	if err != nil {
		yield("", &ReadError{Path: path, Err: err})
		return false
	}

	e.open[path] = true
	e.chain = append(e.chain, path)
	ok := e.walk(lines, yield)
	e.chain = e.chain[:len(e.chain)-1]
	delete(e.open, path)
	return ok
}
