package store

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Metadata is the structured record stored next to each entry.
type Metadata struct {
	Title string   `yaml:"title,omitempty"`
	Date  string   `yaml:"date,omitempty"`
	Tags  []string `yaml:"tags"`
}

// ParseMetadata decodes a metadata record. On error the zero Metadata is
// returned so callers can degrade to empty tags and no date.
func ParseMetadata(data []byte) (Metadata, error) {
	var meta Metadata
	if err := yaml.Unmarshal(data, &meta); err != nil {
		return Metadata{}, fmt.Errorf("parse metadata: %w", err)
	}
	meta.Title = strings.TrimSpace(meta.Title)
	meta.Date = strings.TrimSpace(meta.Date)
	meta.Tags = NormalizeTags(meta.Tags)
	return meta, nil
}

// NormalizeTags trims, drops empties, de-duplicates and sorts tags.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// ReadMetadata loads the metadata record of rawPath. A missing record
// returns an error wrapping ErrNotFound.
func (s *Store) ReadMetadata(rawPath string) (Metadata, error) {
	data, err := s.storage.ReadFile(s.DerivedPath(rawPath, KindMetadata))
	if err != nil {
		return Metadata{}, err
	}
	return ParseMetadata(data)
}

// WriteMetadata replaces the metadata record of rawPath.
func (s *Store) WriteMetadata(rawPath string, meta Metadata) error {
	meta.Tags = NormalizeTags(meta.Tags)
	data, err := yaml.Marshal(meta)
	if err != nil {
		return fmt.Errorf("encode metadata: %w", err)
	}
	return s.WriteBinary(s.DerivedPath(rawPath, KindMetadata), data)
}
