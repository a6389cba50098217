package pipeline

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/nguyentantai21042004/audio-journal/internal/logger"
	"github.com/nguyentantai21042004/audio-journal/internal/store"
)

// Transcribe runs the transcription step on the raw media and overwrites
// the transcript artifact. Re-running it on the same entry is safe.
func (p *implPipeline) Transcribe(ctx context.Context, rawPath string) (string, error) {
	ctx = logger.WithEntry(ctx, p.store.BaseName(rawPath))

	ok, err := p.store.Stat(rawPath)
	if err != nil {
		return "", &StageError{Stage: StageTranscribe, RawPath: rawPath, Err: fmt.Errorf("raw media: %w", err)}
	}
	if !ok {
		return "", &StageError{Stage: StageTranscribe, RawPath: rawPath, Err: fmt.Errorf("raw media: %w", store.ErrNotFound)}
	}

	p.logger.Info(ctx, "Starting transcription: %s", rawPath)

	out, err := p.steps.Transcriber.Run(ctx, rawPath)
	if err != nil {
		p.logger.Error(ctx, "Transcription failed: %v", err)
		return "", &StageError{Stage: StageTranscribe, RawPath: rawPath, Err: err}
	}
	if out.Diagnostics != "" {
		p.logger.Debug(ctx, "Transcriber diagnostics: %s", out.Diagnostics)
	}

	transcript := strings.TrimRightFunc(out.Text, unicode.IsSpace)
	if strings.TrimSpace(transcript) == "" {
		return "", &StageError{Stage: StageTranscribe, RawPath: rawPath, Err: ErrNoOutput}
	}

	transcriptPath := p.store.DerivedPath(rawPath, store.KindTranscript)
	if err := p.store.WriteText(transcriptPath, transcript); err != nil {
		return "", &StageError{Stage: StageTranscribe, RawPath: rawPath, Err: fmt.Errorf("write transcript: %w", err)}
	}

	p.logger.Info(ctx, "Transcription completed: %s", transcriptPath)
	return transcript, nil
}
