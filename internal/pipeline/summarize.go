package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/audio-journal/internal/logger"
	"github.com/nguyentantai21042004/audio-journal/internal/store"
)

// Summarize runs the summarization step on the persisted transcript. The
// transcript itself is never touched.
func (p *implPipeline) Summarize(ctx context.Context, rawPath string) (string, error) {
	ctx = logger.WithEntry(ctx, p.store.BaseName(rawPath))

	transcriptPath := p.store.DerivedPath(rawPath, store.KindTranscript)
	ok, err := p.store.Stat(transcriptPath)
	if err != nil {
		return "", &StageError{Stage: StageSummarize, RawPath: rawPath, Err: fmt.Errorf("transcript: %w", err)}
	}
	if !ok {
		return "", &StageError{Stage: StageSummarize, RawPath: rawPath, Err: ErrNoTranscript}
	}

	p.logger.Info(ctx, "Starting summarization: %s", transcriptPath)

	out, err := p.steps.Summarizer.Run(ctx, transcriptPath)
	if err != nil {
		p.logger.Error(ctx, "Summarization failed: %v", err)
		return "", &StageError{Stage: StageSummarize, RawPath: rawPath, Err: err}
	}
	if out.Diagnostics != "" {
		p.logger.Debug(ctx, "Summarizer diagnostics: %s", out.Diagnostics)
	}

	summary := strings.TrimSpace(out.Text)
	if summary == "" {
		return "", &StageError{Stage: StageSummarize, RawPath: rawPath, Err: ErrNoOutput}
	}

	summaryPath := p.store.DerivedPath(rawPath, store.KindSummary)
	if err := p.store.WriteText(summaryPath, summary); err != nil {
		return "", &StageError{Stage: StageSummarize, RawPath: rawPath, Err: fmt.Errorf("write summary: %w", err)}
	}

	p.logger.Info(ctx, "Summarization completed: %s", summaryPath)
	return summary, nil
}
