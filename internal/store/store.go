package store

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Kind selects one of the derived artifacts of an entry.
type Kind int

const (
	KindTranscript Kind = iota
	KindSummary
	KindMetadata
)

func (k Kind) String() string {
	switch k {
	case KindTranscript:
		return "transcript"
	case KindSummary:
		return "summary"
	case KindMetadata:
		return "metadata"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

const (
	recordingPrefix   = "audio-journal-entry-"
	transcriptSuffix  = ".txt"
	summarySuffix     = ".summary.txt"
	metadataSuffix    = ".yaml"
	defaultImportStem = "imported-entry"
)

// Dots are unsafe in import stems: a stem ending in ".summary" would share
// a path with another entry's summary.
var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// Store derives every artifact path of an entry from its raw media path and
// moves text and bytes through a Storage backend.
type Store struct {
	root       string
	storage    Storage
	extensions map[string]struct{}
	now        func() time.Time

	mu        sync.Mutex
	lastStamp int64
	// reserved holds allocated entry bases (raw path without extension)
	// whose raw media has not been written yet.
	reserved map[string]struct{}
}

// New creates a Store rooted at root. extensions lists the raw media
// extensions (with leading dot) recognised by the catalog.
func New(root string, storage Storage, extensions []string) *Store {
	exts := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		exts[normalizeExt(ext)] = struct{}{}
	}
	return &Store{
		root:       filepath.Clean(root),
		storage:    storage,
		extensions: exts,
		now:        time.Now,
		reserved:   make(map[string]struct{}),
	}
}

// Root returns the catalog directory.
func (s *Store) Root() string {
	return s.root
}

// Extensions returns the recognised raw media extensions, sorted.
func (s *Store) Extensions() []string {
	out := make([]string, 0, len(s.extensions))
	for ext := range s.extensions {
		out = append(out, ext)
	}
	sort.Strings(out)
	return out
}

// AllocateRawMediaName returns a fresh raw media path for a new recording.
// Timestamps are strictly increasing within the process, so concurrent
// callers never receive the same name.
func (s *Store) AllocateRawMediaName(ext string) (string, error) {
	ext = normalizeExt(ext)
	if !s.IsRawMedia("x" + ext) {
		return "", fmt.Errorf("allocate %q: %w", ext, ErrUnsupportedMedia)
	}
	if err := s.storage.MkdirAll(s.root); err != nil {
		return "", fmt.Errorf("create catalog root: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for {
		stamp := s.now().UnixMilli()
		if stamp <= s.lastStamp {
			stamp = s.lastStamp + 1
		}
		s.lastStamp = stamp

		path := filepath.Join(s.root, fmt.Sprintf("%s%d%s", recordingPrefix, stamp, ext))
		free, err := s.isFreeLocked(path)
		if err != nil {
			return "", err
		}
		if free {
			s.reserved[entryBase(path)] = struct{}{}
			return path, nil
		}
	}
}

// AllocateImportName returns a raw media path for an imported file, keeping
// the source file's stem. A short random suffix resolves collisions.
func (s *Store) AllocateImportName(sourceName string) (string, error) {
	ext := normalizeExt(filepath.Ext(sourceName))
	if !s.IsRawMedia("x" + ext) {
		return "", fmt.Errorf("import %q: %w", sourceName, ErrUnsupportedMedia)
	}
	if err := s.storage.MkdirAll(s.root); err != nil {
		return "", fmt.Errorf("create catalog root: %w", err)
	}

	stem := strings.TrimSuffix(filepath.Base(sourceName), filepath.Ext(sourceName))
	stem = strings.Trim(unsafeNameChars.ReplaceAllString(stem, "-"), "-.")
	if stem == "" {
		stem = defaultImportStem
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.root, stem+ext)
	for {
		free, err := s.isFreeLocked(path)
		if err != nil {
			return "", err
		}
		if free {
			s.reserved[entryBase(path)] = struct{}{}
			return path, nil
		}
		path = filepath.Join(s.root, fmt.Sprintf("%s-%s%s", stem, uuid.NewString()[:8], ext))
	}
}

// isFreeLocked reports whether no entry owns the base of path. Derived
// artifacts are keyed on the base alone, so a raw file with any recognised
// extension, or any leftover artifact, claims it.
func (s *Store) isFreeLocked(path string) (bool, error) {
	base := entryBase(path)
	if _, taken := s.reserved[base]; taken {
		return false, nil
	}

	candidates := []string{
		s.DerivedPath(path, KindTranscript),
		s.DerivedPath(path, KindSummary),
		s.DerivedPath(path, KindMetadata),
	}
	for ext := range s.extensions {
		candidates = append(candidates, base+ext, base+strings.ToUpper(ext))
	}
	for _, c := range candidates {
		ok, err := s.storage.Exists(c)
		if err != nil {
			return false, fmt.Errorf("check %s: %w", c, err)
		}
		if ok {
			return false, nil
		}
	}
	return true, nil
}

func entryBase(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path))
}

// DerivedPath maps a raw media path to the path of one of its derived
// artifacts. It never touches storage.
func (s *Store) DerivedPath(rawPath string, kind Kind) string {
	base := entryBase(rawPath)
	switch kind {
	case KindTranscript:
		return base + transcriptSuffix
	case KindSummary:
		return base + summarySuffix
	default:
		return base + metadataSuffix
	}
}

// BaseName returns the entry identifier shared by all of its artifacts.
func (s *Store) BaseName(rawPath string) string {
	name := filepath.Base(rawPath)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// IsRawMedia reports whether name carries a recognised raw media extension.
func (s *Store) IsRawMedia(name string) bool {
	if strings.HasPrefix(filepath.Base(name), ".") {
		return false
	}
	_, ok := s.extensions[normalizeExt(filepath.Ext(name))]
	return ok
}

// ListRawMedia returns every raw media path in the catalog, sorted by name.
// A catalog root that does not exist yet is an empty catalog.
func (s *Store) ListRawMedia() ([]string, error) {
	names, err := s.storage.ReadDir(s.root)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var out []string
	for _, name := range names {
		if s.IsRawMedia(name) {
			out = append(out, filepath.Join(s.root, name))
		}
	}
	sort.Strings(out)
	return out, nil
}

// Lookup resolves an entry base name (or raw file name) to its raw media path.
func (s *Store) Lookup(base string) (string, error) {
	raws, err := s.ListRawMedia()
	if err != nil {
		return "", err
	}
	for _, raw := range raws {
		if s.BaseName(raw) == base || filepath.Base(raw) == base {
			return raw, nil
		}
	}
	return "", fmt.Errorf("entry %q: %w", base, ErrNotFound)
}

// Exists reports whether path is present. Storage errors read as absent;
// use Stat where the cause matters.
func (s *Store) Exists(path string) bool {
	ok, err := s.Stat(path)
	return err == nil && ok
}

// Stat reports whether path is present, passing storage errors through.
func (s *Store) Stat(path string) (bool, error) {
	ok, err := s.storage.Exists(path)
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", path, err)
	}
	return ok, nil
}

// ReadText returns the file contents as text, or an error wrapping ErrNotFound.
func (s *Store) ReadText(path string) (string, error) {
	data, err := s.storage.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (s *Store) WriteText(path, text string) error {
	return s.WriteBinary(path, []byte(text))
}

func (s *Store) WriteBinary(path string, data []byte) error {
	if err := s.storage.MkdirAll(filepath.Dir(path)); err != nil {
		return err
	}
	if err := s.storage.WriteFile(path, data); err != nil {
		return err
	}
	if s.IsRawMedia(path) {
		s.mu.Lock()
		delete(s.reserved, entryBase(path))
		s.mu.Unlock()
	}
	return nil
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
