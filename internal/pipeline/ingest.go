package pipeline

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/nguyentantai21042004/audio-journal/internal/logger"
	"github.com/nguyentantai21042004/audio-journal/internal/store"
)

// DateLayout is the calendar date format stored in entry metadata.
const DateLayout = "2006-01-02"

var filenameDateRe = regexp.MustCompile(`(20\d{2})[-_]?(0[1-9]|1[0-2])[-_]?(0[1-9]|[12][0-9]|3[01])`)

// Ingest persists raw audio. The entry is dated today.
func (p *implPipeline) Ingest(ctx context.Context, data []byte, ext string) (string, error) {
	rawPath, err := p.store.AllocateRawMediaName(ext)
	if err != nil {
		return "", &StageError{Stage: StageIngest, Err: err}
	}
	ctx = logger.WithEntry(ctx, p.store.BaseName(rawPath))

	if err := p.persistRaw(ctx, rawPath, data, store.Metadata{
		Date: p.now().Format(DateLayout),
	}); err != nil {
		return "", err
	}
	return rawPath, nil
}

func (p *implPipeline) importRaw(ctx context.Context, req ImportRequest) (string, error) {
	rawPath, err := p.store.AllocateImportName(req.Name)
	if err != nil {
		return "", &StageError{Stage: StageIngest, Err: err}
	}
	ctx = logger.WithEntry(ctx, p.store.BaseName(rawPath))

	date, ok := ExtractDate(req.Name)
	if !ok {
		modTime := req.ModTime
		if modTime.IsZero() {
			modTime = p.now()
		}
		date = modTime.Format(DateLayout)
	}

	title := strings.TrimSpace(req.DisplayName)
	if title == "" {
		title = date + " Imported Entry"
	}

	if err := p.persistRaw(ctx, rawPath, req.Data, store.Metadata{Title: title, Date: date}); err != nil {
		return "", err
	}
	return rawPath, nil
}

// persistRaw writes the raw media, then its initial metadata record. Only
// the raw write is fatal: an entry without metadata is still a valid entry.
func (p *implPipeline) persistRaw(ctx context.Context, rawPath string, data []byte, meta store.Metadata) error {
	p.logger.Info(ctx, "Saving raw media (%d bytes): %s", len(data), rawPath)

	if err := p.store.WriteBinary(rawPath, data); err != nil {
		return &StageError{Stage: StageIngest, RawPath: rawPath, Err: fmt.Errorf("write raw media: %w", err)}
	}
	if err := p.store.WriteMetadata(rawPath, meta); err != nil {
		p.logger.Warn(ctx, "Failed to write metadata for %s: %v", rawPath, err)
	}
	return nil
}

// ExtractDate finds a calendar date embedded in a file name such as
// "memo-2024-01-15.wav", "20240115_memo.m4a" or "2024_01_15.webm".
func ExtractDate(name string) (string, bool) {
	m := filenameDateRe.FindStringSubmatch(name)
	if m == nil {
		return "", false
	}
	date := m[1] + "-" + m[2] + "-" + m[3]
	if _, err := time.Parse(DateLayout, date); err != nil {
		return "", false
	}
	return date, true
}
