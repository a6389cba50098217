package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/errgroup"

	"github.com/nguyentantai21042004/audio-journal/internal/logger"
)

type implWatcher struct {
	inbox      string
	opts       Options
	extensions map[string]struct{}
	handler    EventHandler
	logger     logger.Logger
	watcher    *fsnotify.Watcher

	mu       sync.Mutex
	inFlight map[string]struct{}

	fileSize func(path string) (int64, error)
}

// Start monitors the inbox until ctx is done, then waits for running
// handlers to finish. Handler failures are logged and never stop the loop.
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "File watcher started (max concurrent: %d). Monitoring: %s", w.opts.MaxConcurrent, w.inbox)

	var g errgroup.Group
	g.SetLimit(w.opts.MaxConcurrent)

	if w.opts.ScanExisting {
		existing, err := w.existingFiles()
		if err != nil {
			return fmt.Errorf("scan inbox: %w", err)
		}
		for _, path := range existing {
			w.dispatch(ctx, &g, path)
		}
	}

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "Waiting for ongoing processing to complete...")
			g.Wait()
			w.logger.Info(ctx, "File watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				g.Wait()
				return fmt.Errorf("watcher events channel closed")
			}
			if event.Op&fsnotify.Create != fsnotify.Create {
				continue
			}
			if !w.isAudioFile(event.Name) {
				w.logger.Debug(ctx, "Ignoring non-audio file: %s", event.Name)
				continue
			}
			w.logger.Info(ctx, "New recording detected: %s", event.Name)
			w.dispatch(ctx, &g, event.Name)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				g.Wait()
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

// dispatch blocks while MaxConcurrent handlers are already running.
func (w *implWatcher) dispatch(ctx context.Context, g *errgroup.Group, path string) {
	if !w.claim(path) {
		return
	}
	g.Go(func() error {
		defer w.release(path)

		if w.opts.SettleDelay > 0 {
			if err := w.waitSettled(ctx, path); err != nil {
				if ctx.Err() == nil {
					w.logger.Error(ctx, "Skipping %s: %v", path, err)
				}
				return nil
			}
		}

		if err := w.handler(ctx, path); err != nil {
			w.logger.Error(ctx, "Failed to process %s: %v", path, err)
		}
		return nil
	})
}

// waitSettled polls the file size every SettleDelay and returns once two
// consecutive sizes match, so a file still being copied is not read short.
func (w *implWatcher) waitSettled(ctx context.Context, path string) error {
	deadline := time.Now().Add(w.opts.MaxSettle)
	last := int64(-1)
	for {
		select {
		case <-time.After(w.opts.SettleDelay):
		case <-ctx.Done():
			return ctx.Err()
		}

		size, err := w.fileSize(path)
		if err != nil {
			return err
		}
		if size == last {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("%s still growing after %s", path, w.opts.MaxSettle)
		}
		w.logger.Debug(ctx, "Waiting for %s to settle (%d bytes)", path, size)
		last = size
	}
}

func fileSize(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// claim reports false when path is already being handled.
func (w *implWatcher) claim(path string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, busy := w.inFlight[path]; busy {
		return false
	}
	w.inFlight[path] = struct{}{}
	return true
}

func (w *implWatcher) release(path string) {
	w.mu.Lock()
	delete(w.inFlight, path)
	w.mu.Unlock()
}

// Stop closes the file watcher
func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}

func (w *implWatcher) existingFiles() ([]string, error) {
	entries, err := os.ReadDir(w.inbox)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		path := filepath.Join(w.inbox, e.Name())
		if !e.IsDir() && w.isAudioFile(path) {
			files = append(files, path)
		}
	}
	sort.Strings(files)
	return files, nil
}

// isAudioFile checks if the file has a supported audio extension
func (w *implWatcher) isAudioFile(path string) bool {
	if strings.HasPrefix(filepath.Base(path), ".") {
		return false
	}
	_, ok := w.extensions[strings.ToLower(filepath.Ext(path))]
	return ok
}
