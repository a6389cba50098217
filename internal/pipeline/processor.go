package pipeline

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/nguyentantai21042004/audio-journal/internal/logger"
	"github.com/nguyentantai21042004/audio-journal/internal/store"
)

// Process orchestrates the entire entry processing pipeline
func (p *implPipeline) Process(ctx context.Context, data []byte, ext string) Result {
	rawPath, err := p.Ingest(ctx, data, ext)
	if err != nil {
		p.logger.Error(ctx, "Ingest failed: %v", err)
		return Result{State: StateNew, FailedStage: StageIngest, Err: err}
	}
	return p.advance(ctx, rawPath, false)
}

func (p *implPipeline) ProcessAsync(ctx context.Context, data []byte, ext string) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		defer close(ch)
		ch <- p.Process(ctx, data, ext)
	}()
	return ch
}

func (p *implPipeline) Import(ctx context.Context, req ImportRequest) Result {
	rawPath, err := p.importRaw(ctx, req)
	if err != nil {
		p.logger.Error(ctx, "Import of %s failed: %v", req.Name, err)
		return Result{State: StateNew, FailedStage: StageIngest, Err: err}
	}
	return p.advance(ctx, rawPath, false)
}

func (p *implPipeline) Resume(ctx context.Context, rawPath string) Result {
	ok, err := p.store.Stat(rawPath)
	if err == nil && !ok {
		err = store.ErrNotFound
	}
	if err != nil {
		return Result{
			RawMediaPath: rawPath,
			State:        StateNew,
			FailedStage:  StageIngest,
			Err:          &StageError{Stage: StageIngest, RawPath: rawPath, Err: err},
		}
	}
	return p.advance(ctx, rawPath, true)
}

// advance moves an ingested entry forward one stage at a time. Each stage's
// artifact is persisted before the next starts, so a failure leaves the
// entry at its last successful state. With reuse set, stages whose artifact
// already exists are not re-run.
func (p *implPipeline) advance(ctx context.Context, rawPath string, reuse bool) Result {
	startTime := time.Now()
	ctx = logger.WithEntry(ctx, p.store.BaseName(rawPath))
	res := Result{RawMediaPath: rawPath, State: StateIngested}

	p.logger.Info(ctx, "Processing entry: %s", rawPath)

	transcript, ok := p.existing(ctx, rawPath, store.KindTranscript, reuse)
	if !ok {
		var err error
		if transcript, err = p.Transcribe(ctx, rawPath); err != nil {
			res.FailedStage, res.Err = StageTranscribe, err
			return res
		}
	}
	res.Transcript, res.State = transcript, StateTranscribed

	summary, ok := p.existing(ctx, rawPath, store.KindSummary, reuse)
	if !ok {
		var err error
		if summary, err = p.Summarize(ctx, rawPath); err != nil {
			res.FailedStage, res.Err = StageSummarize, err
			return res
		}
	}
	res.Summary, res.State = summary, StateSummarized

	res.Export = p.Export(ctx, rawPath)
	switch res.Export.Status {
	case ExportSucceeded:
		res.State = StateExported
	case ExportSkipped:
		res.State = StateExportSkipped
	}

	p.logger.Info(ctx, "Entry processed (%s) in %s", res.State, time.Since(startTime))
	return res
}

// existing returns the trimmed artifact text when reuse is set and the
// artifact already holds content.
func (p *implPipeline) existing(ctx context.Context, rawPath string, kind store.Kind, reuse bool) (string, bool) {
	if !reuse {
		return "", false
	}
	text, err := p.store.ReadText(p.store.DerivedPath(rawPath, kind))
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			p.logger.Warn(ctx, "Re-running %s, artifact unreadable: %v", kind, err)
		}
		return "", false
	}
	if strings.TrimSpace(text) == "" {
		return "", false
	}
	p.logger.Debug(ctx, "Reusing existing %s", kind)
	return text, true
}
