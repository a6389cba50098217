package pipeline

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nguyentantai21042004/audio-journal/internal/logger"
	"github.com/nguyentantai21042004/audio-journal/internal/store"
	"github.com/nguyentantai21042004/audio-journal/pkg/executor"
)

const testRoot = "/journal/entries"

type fakeStep struct {
	calls atomic.Int32
	fn    func(ctx context.Context, input string) (Output, error)
}

func (f *fakeStep) Run(ctx context.Context, input string) (Output, error) {
	f.calls.Add(1)
	return f.fn(ctx, input)
}

func textStep(text string) *fakeStep {
	return &fakeStep{fn: func(context.Context, string) (Output, error) {
		return Output{Text: text}, nil
	}}
}

func failingStep(stderr string) *fakeStep {
	return &fakeStep{fn: func(context.Context, string) (Output, error) {
		return Output{Diagnostics: stderr}, &executor.ToolError{Name: "tool", ExitCode: 1, Stderr: stderr}
	}}
}

type fakeExporter struct {
	mu      sync.Mutex
	reqs    []ExportRequest
	outcome ExportOutcome
}

func (f *fakeExporter) Export(_ context.Context, req ExportRequest) ExportOutcome {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reqs = append(f.reqs, req)
	return f.outcome
}

// failingStorage rejects writes to paths with the given suffix.
type failingStorage struct {
	store.Storage
	suffix string
}

func (f *failingStorage) WriteFile(path string, data []byte) error {
	if strings.HasSuffix(path, f.suffix) {
		return errors.New("no space left on device")
	}
	return f.Storage.WriteFile(path, data)
}

var errPermission = errors.New("permission denied")

// unreadableStorage fails existence checks for paths with the given suffix.
type unreadableStorage struct {
	store.Storage
	suffix string
}

func (u *unreadableStorage) Exists(path string) (bool, error) {
	if strings.HasSuffix(path, u.suffix) {
		return false, errPermission
	}
	return u.Storage.Exists(path)
}

type recordingExecutor struct {
	mu    sync.Mutex
	calls [][]string
	res   executor.Result
	err   error
}

func (r *recordingExecutor) Run(ctx context.Context, name string, args ...string) (executor.Result, error) {
	return r.RunInDir(ctx, "", name, args...)
}

func (r *recordingExecutor) RunInDir(_ context.Context, _ string, name string, args ...string) (executor.Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, append([]string{name}, args...))
	return r.res, r.err
}

func newTestStore(backend store.Storage) *store.Store {
	return store.New(testRoot, backend, []string{".webm", ".wav", ".m4a"})
}

func newTestPipeline(t *testing.T, st *store.Store, steps Steps) *implPipeline {
	t.Helper()
	p := New(st, steps, logger.Nop()).(*implPipeline)
	p.now = func() time.Time { return time.Date(2024, time.January, 15, 9, 30, 0, 0, time.UTC) }
	return p
}
