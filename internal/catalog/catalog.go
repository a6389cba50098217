package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/nguyentantai21042004/audio-journal/internal/logger"
	"github.com/nguyentantai21042004/audio-journal/internal/store"
)

// Reader lists entries by rescanning the catalog directory on every call.
type Reader struct {
	store  *store.Store
	logger logger.Logger
}

func NewReader(st *store.Store, log logger.Logger) *Reader {
	return &Reader{store: st, logger: log}
}

// ListEntries returns one entry per raw media file, ordered by file name.
// Missing or unreadable derived artifacts never fail the listing.
func (r *Reader) ListEntries(ctx context.Context) ([]Entry, error) {
	raws, err := r.store.ListRawMedia()
	if err != nil {
		return nil, fmt.Errorf("list catalog: %w", err)
	}

	entries := make([]Entry, 0, len(raws))
	for _, raw := range raws {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		entries = append(entries, r.load(ctx, raw))
	}
	return entries, nil
}

// Get loads a single entry by base name or raw file name.
func (r *Reader) Get(ctx context.Context, base string) (Entry, error) {
	raw, err := r.store.Lookup(base)
	if err != nil {
		return Entry{}, err
	}
	return r.load(ctx, raw), nil
}

func (r *Reader) load(ctx context.Context, raw string) Entry {
	ctx = logger.WithEntry(ctx, r.store.BaseName(raw))
	entry := Entry{
		BaseName:     r.store.BaseName(raw),
		RawMediaPath: raw,
		Tags:         []string{},
	}

	entry.Transcript = r.optionalText(ctx, r.store.DerivedPath(raw, store.KindTranscript))
	entry.Summary = r.optionalText(ctx, r.store.DerivedPath(raw, store.KindSummary))

	meta, err := r.store.ReadMetadata(raw)
	switch {
	case err == nil:
		entry.Title = meta.Title
		entry.Date = meta.Date
		entry.Tags = meta.Tags
	case errors.Is(err, store.ErrNotFound):
	default:
		r.logger.Warn(ctx, "Ignoring malformed metadata for %s: %v", raw, err)
	}
	return entry
}

func (r *Reader) optionalText(ctx context.Context, path string) *string {
	text, err := r.store.ReadText(path)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			r.logger.Warn(ctx, "Skipping unreadable artifact %s: %v", path, err)
		}
		return nil
	}
	return &text
}
