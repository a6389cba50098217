package store

import (
	"fmt"
	"path/filepath"
	"sort"
	"sync"
)

// Memory is an in-process Storage used by tests.
type Memory struct {
	mu    sync.RWMutex
	files map[string][]byte
	dirs  map[string]struct{}
}

func NewMemory() *Memory {
	return &Memory{
		files: make(map[string][]byte),
		dirs:  make(map[string]struct{}),
	}
}

func (m *Memory) ReadFile(path string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.files[filepath.Clean(path)]
	if !ok {
		return nil, fmt.Errorf("memory: read %s: %w", path, ErrNotFound)
	}
	return append([]byte(nil), data...), nil
}

func (m *Memory) WriteFile(path string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	path = filepath.Clean(path)
	if _, ok := m.dirs[filepath.Dir(path)]; !ok {
		return fmt.Errorf("memory: write %s: parent directory missing", path)
	}
	m.files[path] = append([]byte(nil), data...)
	return nil
}

func (m *Memory) Exists(path string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.files[filepath.Clean(path)]
	return ok, nil
}

func (m *Memory) ReadDir(dir string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	dir = filepath.Clean(dir)
	if _, ok := m.dirs[dir]; !ok {
		return nil, fmt.Errorf("memory: list %s: %w", dir, ErrNotFound)
	}

	var names []string
	for p := range m.files {
		if filepath.Dir(p) == dir {
			names = append(names, filepath.Base(p))
		}
	}
	sort.Strings(names)
	return names, nil
}

func (m *Memory) MkdirAll(dir string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for d := filepath.Clean(dir); ; d = filepath.Dir(d) {
		m.dirs[d] = struct{}{}
		if parent := filepath.Dir(d); parent == d {
			break
		}
	}
	return nil
}
