// Package store owns the naming and layout of every artifact that belongs to
// a journal entry inside one catalog directory.
package store

// Storage is the byte-level backend the Store writes through. Paths are
// full paths as produced by the Store.
type Storage interface {
	// ReadFile returns the file contents, or an error wrapping ErrNotFound.
	ReadFile(path string) ([]byte, error)
	// WriteFile replaces the file contents. The parent directory must exist.
	WriteFile(path string, data []byte) error
	// Exists reports whether a regular file is present at path.
	Exists(path string) (bool, error)
	// ReadDir lists the regular files directly inside dir, by name.
	// A missing dir yields an error wrapping ErrNotFound.
	ReadDir(dir string) ([]string, error)
	// MkdirAll creates dir and any missing parents.
	MkdirAll(dir string) error
}
