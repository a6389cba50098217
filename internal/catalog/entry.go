// Package catalog rebuilds journal entries from the artifact store and
// answers filter and aggregate queries over them.
package catalog

import (
	"strings"
	"unicode/utf8"
)

// Entry is one journal recording and whatever derived artifacts exist.
// Transcript and Summary are nil when the file is absent. Date is empty
// when no usable metadata was found.
type Entry struct {
	BaseName     string   `json:"base_name"`
	RawMediaPath string   `json:"raw_media_path"`
	Title        string   `json:"title,omitempty"`
	Transcript   *string  `json:"transcript"`
	Summary      *string  `json:"summary"`
	Tags         []string `json:"tags"`
	Date         string   `json:"date,omitempty"`
}

func (e Entry) HasTranscript() bool {
	return e.Transcript != nil && strings.TrimSpace(*e.Transcript) != ""
}

func (e Entry) HasSummary() bool {
	return e.Summary != nil && strings.TrimSpace(*e.Summary) != ""
}

// HasTag reports whether the entry carries tag.
func (e Entry) HasTag(tag string) bool {
	for _, t := range e.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Snippet returns at most n runes of the transcript, marking truncation.
func (e Entry) Snippet(n int) string {
	if e.Transcript == nil {
		return ""
	}
	text := strings.Join(strings.Fields(*e.Transcript), " ")
	if n <= 0 || utf8.RuneCountInString(text) <= n {
		return text
	}
	return string([]rune(text)[:n]) + "..."
}
