package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/nguyentantai21042004/audio-journal/internal/store"
)

// SetTags rewrites the tag list in the entry's metadata, keeping its title
// and date. A malformed record is replaced.
func (p *implPipeline) SetTags(rawPath string, tags []string) error {
	ok, err := p.store.Stat(rawPath)
	if err != nil {
		return fmt.Errorf("set tags: %w", err)
	}
	if !ok {
		return fmt.Errorf("set tags %s: %w", rawPath, store.ErrNotFound)
	}

	meta, err := p.store.ReadMetadata(rawPath)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		p.logger.Warn(context.Background(), "Replacing unreadable metadata for %s: %v", rawPath, err)
	}
	meta.Tags = tags

	if err := p.store.WriteMetadata(rawPath, meta); err != nil {
		return fmt.Errorf("set tags %s: %w", rawPath, err)
	}
	return nil
}
