// Package snapfs defines the narrow filesystem contract used by the argument
// parser and binder, plus an OS-backed and an in-memory implementation.
package snapfs

import (
	"errors"
	"sort"
	"strings"
)

// ErrNotFound is returned (wrapped) when a path does not exist.
var ErrNotFound = errors.New("snapfs: not found")

// Filesystem is everything the parser needs from a filesystem. Existence checks,
// args-file expansion, file-content substitution and directory expansion all go
// through it and nothing else.
type Filesystem interface {
	FileExists(path string) bool
	DirectoryExists(path string) bool
	ReadAllText(path string) (string, error)
	ReadAllLines(path string) ([]string, error)
	ReadAllBytes(path string) ([]byte, error)
	MakeFullyQualified(path string) (string, error)
	ListEntries(dir string) ([]Entry, error)
}

// Entry is one item of a directory listing.
type Entry struct {
	Path  string // fully qualified
	Name  string
	IsDir bool
}

// Dir is a directory produced by expanding a directory argument.
type Dir struct {
	Path string
}

// File is a regular file produced by expanding a directory argument.
type File struct {
	Path string
}

// Dirs filters entries down to directories.
func Dirs(entries []Entry) []Dir {
	dirs := make([]Dir, 0, len(entries))
	for _, e := range entries {
		if e.IsDir {
			dirs = append(dirs, Dir{Path: e.Path})
		}
	}
	return dirs
}

// Files filters entries down to regular files.
func Files(entries []Entry) []File {
	files := make([]File, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir {
			files = append(files, File{Path: e.Path})
		}
	}
	return files
}

// splitLines splits text on \n, dropping \r and a single trailing empty line.
func splitLines(text string) []string {
	if text == "" {
		return []string{}
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func sortEntries(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
}
