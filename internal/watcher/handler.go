package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nguyentantai21042004/audio-journal/internal/logger"
	"github.com/nguyentantai21042004/audio-journal/internal/pipeline"
)

const importedDir = "imported"

// ImportHandler imports each inbox file into the catalog through p. A file
// whose import got past ingest is moved to the inbox's imported/ directory
// so it is not picked up again; later stage failures are left for retry.
func ImportHandler(p pipeline.Pipeline, log logger.Logger) EventHandler {
	return func(ctx context.Context, path string) error {
		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("stat %s: %w", path, err)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}

		res := p.Import(ctx, pipeline.ImportRequest{
			Name:    filepath.Base(path),
			Data:    data,
			ModTime: info.ModTime(),
		})
		if res.RawMediaPath == "" {
			return res.Err
		}

		ctx = logger.WithEntry(ctx, filepath.Base(res.RawMediaPath))
		if res.Failed() {
			log.Warn(ctx, "Imported %s but %s failed: %v", path, res.FailedStage, res.Err)
		} else {
			log.Info(ctx, "Imported %s: %s", path, res.ExportMessage())
		}

		done := filepath.Join(filepath.Dir(path), importedDir)
		if err := os.MkdirAll(done, 0755); err != nil {
			return fmt.Errorf("create %s: %w", done, err)
		}
		if err := os.Rename(path, filepath.Join(done, filepath.Base(path))); err != nil {
			return fmt.Errorf("move %s: %w", path, err)
		}
		return nil
	}
}
