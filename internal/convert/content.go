package convert

import (
	"errors"
	"path/filepath"
	"strings"

	snapfs "github.com/dzonerzy/go-snapargs/fs"
	"github.com/dzonerzy/go-snapargs/internal/typeinfo"
)

// FileContent treats the value as a path and substitutes the file's content.
// Targets it cannot fill directly get the trimmed text converted by Next;
// vector targets get each non-blank line converted by Next.
type FileContent struct {
	FS   snapfs.Filesystem
	Next *Chain
}

func (f *FileContent) Name() string { return "file-content" }

func (f *FileContent) Applies(req Request) bool {
	return req.Flags.ReadFileContent
}

func (f *FileContent) Convert(req Request) (Result, error) {
	path, err := f.FS.MakeFullyQualified(ExpandEnv(req.Value))
	if err != nil {
		return Result{}, err
	}
	target := req.Target

	switch {
	case target.IsByteVector(), target.Elem == bytesType:
		data, err := f.FS.ReadAllBytes(path)
		if err != nil {
			return Result{}, err
		}
		if target.Elem == bytesType {
			return success(data), nil
		}
		return success(byteValues(data)...), nil

	case target.Elem == stringType && target.IsVector:
		lines, err := f.FS.ReadAllLines(path)
		if err != nil {
			return Result{}, err
		}
		values := make([]any, len(lines))
		for i, line := range lines {
			values[i] = line
		}
		return Result{Succeeded: true, Values: values}, nil

	case target.IsVector && !typeinfo.IsDocument(target.Elem):
		lines, err := f.FS.ReadAllLines(path)
		if err != nil {
			return Result{}, err
		}
		var values []any
		for _, line := range lines {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			converted, err := f.convertNext(req, line)
			if err != nil {
				return Result{}, err
			}
			values = append(values, converted...)
		}
		return Result{Succeeded: true, Values: values}, nil
	}

	text, err := f.FS.ReadAllText(path)
	if err != nil {
		return Result{}, err
	}
	switch {
	case target.Elem == stringType:
		return success(text), nil
	case typeinfo.IsDocument(target.Elem):
		doc, err := decodeDocument(text, filepath.Ext(path), target.Elem)
		if err != nil {
			return Result{}, err
		}
		return success(doc), nil
	}

	values, err := f.convertNext(req, strings.TrimSpace(text))
	if err != nil {
		return Result{}, err
	}
	return Result{Succeeded: true, Values: values}, nil
}

// convertNext hands one piece of file text to the rest of the chain.
func (f *FileContent) convertNext(req Request, text string) ([]any, error) {
	next := req
	next.Value = text
	next.Flags.ReadFileContent = false
	values, err := f.Next.Convert(next)
	if err != nil {
		var convErr *ConversionError
		if errors.As(err, &convErr) && convErr.Err != nil {
			return nil, convErr.Err
		}
		return nil, err
	}
	return values, nil
}
