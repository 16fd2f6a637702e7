package convert

import (
	"reflect"

	snapfs "github.com/dzonerzy/go-snapargs/fs"
)

var (
	entryType  = reflect.TypeOf(snapfs.Entry{})
	dirType    = reflect.TypeOf(snapfs.Dir{})
	fileType   = reflect.TypeOf(snapfs.File{})
	stringType = reflect.TypeOf("")
)

// Directory expands an existing-directory argument into listing entries,
// directories, files, or the qualified path itself.
type Directory struct {
	FS snapfs.Filesystem
}

func (d *Directory) Name() string { return "directory" }

func (d *Directory) Applies(req Request) bool {
	if !req.Flags.ExistingDirectory {
		return false
	}
	switch req.Target.Elem {
	case entryType, dirType, stringType:
		return true
	case fileType:
		return req.Target.IsVector
	}
	return false
}

func (d *Directory) Convert(req Request) (Result, error) {
	path, err := d.FS.MakeFullyQualified(ExpandEnv(req.Value))
	if err != nil {
		return Result{}, err
	}
	if req.Target.Elem == stringType {
		return success(path), nil
	}
	if !req.Target.IsVector {
		if req.Target.Elem == dirType {
			return success(snapfs.Dir{Path: path}), nil
		}
		return success(snapfs.Entry{Path: path, Name: baseName(path), IsDir: true}), nil
	}

	entries, err := d.FS.ListEntries(path)
	if err != nil {
		return Result{}, err
	}
	var values []any
	switch req.Target.Elem {
	case dirType:
		for _, dir := range snapfs.Dirs(entries) {
			values = append(values, dir)
		}
	case fileType:
		for _, file := range snapfs.Files(entries) {
			values = append(values, file)
		}
	default:
		for _, e := range entries {
			values = append(values, e)
		}
	}
	return Result{Succeeded: true, Values: values}, nil
}

func baseName(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' || path[i] == '\\' {
			if i == len(path)-1 {
				return baseName(path[:i])
			}
			return path[i+1:]
		}
	}
	return path
}
