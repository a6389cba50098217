package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/nguyentantai21042004/audio-journal/internal/config"
	"github.com/nguyentantai21042004/audio-journal/internal/logger"
	"github.com/nguyentantai21042004/audio-journal/internal/store"
	"github.com/nguyentantai21042004/audio-journal/pkg/executor"
)

const msgExportNotConfigured = "export config not found; export skipped"

// ToolExporter runs `Command Args... <raw> <transcript> <summary> [tags...]`
// when its configuration file exists.
type ToolExporter struct {
	executor executor.Executor
	cfg      config.ExportConfig
}

func NewToolExporter(exec executor.Executor, cfg config.ExportConfig) *ToolExporter {
	return &ToolExporter{executor: exec, cfg: cfg}
}

func (e *ToolExporter) configured() bool {
	if e.cfg.Command == "" || e.cfg.ConfigFile == "" {
		return false
	}
	info, err := os.Stat(e.cfg.ConfigFile)
	return err == nil && !info.IsDir()
}

func (e *ToolExporter) Export(ctx context.Context, req ExportRequest) ExportOutcome {
	if !e.configured() {
		return ExportOutcome{Status: ExportSkipped, Message: msgExportNotConfigured}
	}

	if e.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.cfg.Timeout)
		defer cancel()
	}

	args := append([]string{}, e.cfg.Args...)
	args = append(args, req.RawPath, req.TranscriptPath, req.Summary)
	args = append(args, req.Tags...)

	res, err := e.executor.Run(ctx, e.cfg.Command, args...)
	if err != nil {
		return ExportOutcome{
			Status:  ExportFailed,
			Message: fmt.Sprintf("export failed: %s", strings.TrimSpace(res.Stderr)),
			Err:     err,
		}
	}
	return ExportOutcome{Status: ExportSucceeded, Message: strings.TrimSpace(res.Stdout)}
}

// Export never changes the entry's artifacts; a failure is reported in the
// outcome only.
func (p *implPipeline) Export(ctx context.Context, rawPath string) ExportOutcome {
	ctx = logger.WithEntry(ctx, p.store.BaseName(rawPath))

	if p.steps.Exporter == nil {
		return ExportOutcome{Status: ExportSkipped, Message: msgExportNotConfigured}
	}

	summary, err := p.store.ReadText(p.store.DerivedPath(rawPath, store.KindSummary))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ExportOutcome{Status: ExportSkipped, Message: "entry has no summary; export skipped"}
		}
		return ExportOutcome{Status: ExportFailed, Message: fmt.Sprintf("export failed: %v", err), Err: err}
	}

	meta, err := p.store.ReadMetadata(rawPath)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		p.logger.Warn(ctx, "Ignoring unreadable metadata for export: %v", err)
	}

	p.logger.Info(ctx, "Exporting entry: %s", rawPath)
	outcome := p.steps.Exporter.Export(ctx, ExportRequest{
		RawPath:        rawPath,
		TranscriptPath: p.store.DerivedPath(rawPath, store.KindTranscript),
		Summary:        summary,
		Tags:           meta.Tags,
	})

	switch outcome.Status {
	case ExportSucceeded:
		p.logger.Info(ctx, "Export completed: %s", outcome.Message)
	case ExportFailed:
		p.logger.Warn(ctx, "Export failed (entry kept): %v", outcome.Err)
	default:
		p.logger.Info(ctx, "%s", outcome.Message)
	}
	return outcome
}
