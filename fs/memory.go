package snapfs

import (
	"fmt"
	"path"
	"strings"
	"sync"
)

// Memory is an in-memory Filesystem with slash-separated paths. It is safe for
// concurrent use and is mostly useful in tests.
type Memory struct {
	mu    sync.RWMutex
	cwd   string
	files map[string][]byte
	dirs  map[string]bool
}

var _ Filesystem = (*Memory)(nil)

// NewMemory returns an empty filesystem whose working directory is cwd.
func NewMemory(cwd string) *Memory {
	if cwd == "" {
		cwd = "/"
	}
	m := &Memory{
		cwd:   path.Clean("/" + cwd),
		files: make(map[string][]byte),
		dirs:  map[string]bool{"/": true},
	}
	m.mkdirAll(m.cwd)
	return m
}

// WriteFile stores content at name, creating parent directories.
func (m *Memory) WriteFile(name string, content []byte) *Memory {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := m.qualify(name)
	m.mkdirAll(path.Dir(p))
	m.files[p] = append([]byte(nil), content...)
	return m
}

// WriteText is WriteFile for string content.
func (m *Memory) WriteText(name, content string) *Memory {
	return m.WriteFile(name, []byte(content))
}

// Mkdir creates name and all of its parents.
func (m *Memory) Mkdir(name string) *Memory {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mkdirAll(m.qualify(name))
	return m
}

func (m *Memory) mkdirAll(p string) {
	for p != "/" && p != "." {
		m.dirs[p] = true
		p = path.Dir(p)
	}
}

func (m *Memory) qualify(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	if !path.IsAbs(name) {
		name = path.Join(m.cwd, name)
	}
	return path.Clean(name)
}

func (m *Memory) FileExists(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.files[m.qualify(name)]
	return ok
}

func (m *Memory) DirectoryExists(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.dirs[m.qualify(name)]
}

func (m *Memory) ReadAllBytes(name string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.files[m.qualify(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return append([]byte(nil), data...), nil
}

func (m *Memory) ReadAllText(name string) (string, error) {
	data, err := m.ReadAllBytes(name)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (m *Memory) ReadAllLines(name string) ([]string, error) {
	text, err := m.ReadAllText(name)
	if err != nil {
		return nil, err
	}
	return splitLines(text), nil
}

func (m *Memory) MakeFullyQualified(name string) (string, error) {
	return m.qualify(name), nil
}

func (m *Memory) ListEntries(dir string) ([]Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	root := m.qualify(dir)
	if !m.dirs[root] {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, dir)
	}
	var entries []Entry
	for p := range m.dirs {
		if p != root && path.Dir(p) == root {
			entries = append(entries, Entry{Path: p, Name: path.Base(p), IsDir: true})
		}
	}
	for p := range m.files {
		if path.Dir(p) == root {
			entries = append(entries, Entry{Path: p, Name: path.Base(p)})
		}
	}
	sortEntries(entries)
	return entries, nil
}
