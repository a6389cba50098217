// Package docxwriter renders a journal entry as a Word document.
package docxwriter

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"

	"github.com/nguyentantai21042004/audio-journal/internal/catalog"
)

const (
	fontName  = "Times New Roman"
	fontSize  = 13
	titleSize = 16
	headSize  = 14
	metaColor = "595959"
)

var (
	reBold   = regexp.MustCompile(`\*\*(.+?)\*\*`)
	reBullet = regexp.MustCompile(`^[\-\*]\s+(.+)$`)
)

// ErrEmptyEntry is returned for entries with neither summary nor transcript.
var ErrEmptyEntry = errors.New("docxwriter: entry has no summary or transcript")

// Write renders entry to a .docx file at outputPath.
func Write(entry catalog.Entry, outputPath string) error {
	if !entry.HasSummary() && !entry.HasTranscript() {
		return ErrEmptyEntry
	}

	doc, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("create document: %w", err)
	}

	addStyledRun(doc.AddParagraph(""), Title(entry), true, titleSize, "000000")
	if meta := metaLine(entry); meta != "" {
		addStyledRun(doc.AddParagraph(""), meta, false, fontSize, metaColor)
	}

	if entry.HasSummary() {
		addSection(doc, "Summary", *entry.Summary)
	}
	if entry.HasTranscript() {
		addSection(doc, "Transcript", *entry.Transcript)
	}

	if err := doc.SaveTo(outputPath); err != nil {
		return fmt.Errorf("save %s: %w", outputPath, err)
	}
	return nil
}

// Title is the document heading: the recorded title, else the base name.
func Title(entry catalog.Entry) string {
	if entry.Title != "" {
		return entry.Title
	}
	return entry.BaseName
}

func metaLine(entry catalog.Entry) string {
	var parts []string
	if entry.Date != "" {
		parts = append(parts, entry.Date)
	}
	if len(entry.Tags) > 0 {
		tags := make([]string, len(entry.Tags))
		for i, t := range entry.Tags {
			tags[i] = "#" + t
		}
		parts = append(parts, strings.Join(tags, " "))
	}
	return strings.Join(parts, "  ·  ")
}

func addSection(doc *docx.RootDoc, heading, body string) {
	doc.AddParagraph("")
	addStyledRun(doc.AddParagraph(""), heading, true, headSize, "000000")
	for _, para := range Paragraphs(body) {
		p := doc.AddParagraph("")
		if m := reBullet.FindStringSubmatch(para); m != nil {
			addRichText(p, "• "+m[1])
			continue
		}
		addRichText(p, para)
	}
}

// Paragraphs splits text on blank lines and joins wrapped lines, except
// bullet lines which stay on their own.
func Paragraphs(text string) []string {
	var out []string
	var cur []string
	flush := func() {
		if len(cur) > 0 {
			out = append(out, strings.Join(cur, " "))
			cur = nil
		}
	}

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			flush()
		case reBullet.MatchString(trimmed):
			flush()
			out = append(out, trimmed)
		default:
			cur = append(cur, trimmed)
		}
	}
	flush()
	return out
}

func addStyledRun(p *docx.Paragraph, text string, bold bool, size uint64, color string) {
	run := p.AddText(cleanMarkdownInline(text)).Font(fontName).Size(size).Color(color)
	if bold {
		run.Bold(true)
	}
}

func addRichText(p *docx.Paragraph, text string) {
	parts := reBold.Split(text, -1)
	matches := reBold.FindAllStringSubmatch(text, -1)

	for i, part := range parts {
		if part != "" {
			p.AddText(cleanMarkdownInline(part)).Font(fontName).Size(fontSize).Color("000000")
		}
		if i < len(matches) {
			p.AddText(cleanMarkdownInline(matches[i][1])).Font(fontName).Size(fontSize).Color("000000").Bold(true)
		}
	}
}

func cleanMarkdownInline(s string) string {
	s = strings.ReplaceAll(s, "**", "")
	s = strings.ReplaceAll(s, "__", "")
	s = strings.ReplaceAll(s, "`", "")
	return s
}
