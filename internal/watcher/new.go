package watcher

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/nguyentantai21042004/audio-journal/internal/logger"
)

// Options configures a Watcher.
type Options struct {
	Inbox      string
	Extensions []string
	// SettleDelay is waited after a file appears, then repeatedly until its
	// size stops changing, before it is handled.
	SettleDelay time.Duration
	// MaxSettle caps the total wait for a file that keeps growing. Zero
	// means one minute.
	MaxSettle time.Duration
	// MaxConcurrent bounds the number of handlers running at once.
	MaxConcurrent int
	// ScanExisting handles files already in the inbox when Start is called.
	ScanExisting bool
}

// New creates a new Watcher instance with concurrency control
func New(opts Options, handler EventHandler, log logger.Logger) (Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := watcher.Add(opts.Inbox); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = 2
	}
	if opts.MaxSettle <= 0 {
		opts.MaxSettle = time.Minute
	}

	exts := make(map[string]struct{}, len(opts.Extensions))
	for _, ext := range opts.Extensions {
		ext = strings.ToLower(ext)
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts[ext] = struct{}{}
	}

	return &implWatcher{
		inbox:      filepath.Clean(opts.Inbox),
		opts:       opts,
		extensions: exts,
		handler:    handler,
		logger:     log,
		watcher:    watcher,
		inFlight:   make(map[string]struct{}),
		fileSize:   fileSize,
	}, nil
}
