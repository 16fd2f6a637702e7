package snapfs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// OS is the Filesystem backed by the host operating system.
type OS struct{}

var _ Filesystem = OS{}

func (OS) FileExists(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}

func (OS) DirectoryExists(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}

func (o OS) ReadAllText(path string) (string, error) {
	data, err := o.ReadAllBytes(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (o OS) ReadAllLines(path string) ([]string, error) {
	text, err := o.ReadAllText(path)
	if err != nil {
		return nil, err
	}
	return splitLines(text), nil
}

func (OS) ReadAllBytes(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	return data, err
}

func (OS) MakeFullyQualified(path string) (string, error) {
	return filepath.Abs(path)
}

func (o OS) ListEntries(dir string) ([]Entry, error) {
	abs, err := o.MakeFullyQualified(dir)
	if err != nil {
		return nil, err
	}
	items, err := os.ReadDir(abs)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, dir)
	}
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(items))
	for _, item := range items {
		entries = append(entries, Entry{
			Path:  filepath.Join(abs, item.Name()),
			Name:  item.Name(),
			IsDir: item.IsDir(),
		})
	}
	sortEntries(entries)
	return entries, nil
}
