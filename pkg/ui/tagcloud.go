package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// TagWeight is one tag cloud item.
type TagWeight struct {
	Tag   string
	Count int
}

// RenderTagCloud prints tags in the given order, styled by their count
// relative to the most frequent tag.
func RenderTagCloud(tags []TagWeight) string {
	if len(tags) == 0 {
		return ""
	}
	most := 0
	for _, t := range tags {
		if t.Count > most {
			most = t.Count
		}
	}

	parts := make([]string, 0, len(tags))
	for _, t := range tags {
		label := fmt.Sprintf("#%s(%d)", t.Tag, t.Count)
		parts = append(parts, tagStyle(t.Count, most).Render(label))
	}
	return strings.Join(parts, "  ")
}

func tagStyle(count, most int) lipgloss.Style {
	switch {
	case most > 0 && count*3 >= most*2:
		return StyleTagHeavy
	case most > 0 && count*3 >= most:
		return StyleTagMedium
	default:
		return StyleTagLight
	}
}
