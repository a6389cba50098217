package pipeline

import (
	"time"

	"github.com/nguyentantai21042004/audio-journal/internal/config"
	"github.com/nguyentantai21042004/audio-journal/internal/logger"
	"github.com/nguyentantai21042004/audio-journal/internal/store"
	"github.com/nguyentantai21042004/audio-journal/pkg/executor"
)

// Steps bundles the engines behind each analysis stage. A nil Exporter
// skips the export stage.
type Steps struct {
	Transcriber Step
	Summarizer  Step
	Exporter    Exporter
}

type implPipeline struct {
	store  *store.Store
	steps  Steps
	logger logger.Logger
	now    func() time.Time
}

// New creates a new Pipeline instance
func New(st *store.Store, steps Steps, log logger.Logger) Pipeline {
	return &implPipeline{
		store:  st,
		steps:  steps,
		logger: log,
		now:    time.Now,
	}
}

// ToolSteps builds transcribe, summarize and export steps that shell out to
// the tools named in cfg.
func ToolSteps(cfg *config.Config, exec executor.Executor) Steps {
	return Steps{
		Transcriber: NewToolStep(exec, cfg.Tools.Transcribe),
		Summarizer:  NewToolStep(exec, cfg.Tools.Summarize),
		Exporter:    NewToolExporter(exec, cfg.Tools.Export),
	}
}
