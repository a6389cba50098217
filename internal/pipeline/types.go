package pipeline

import (
	"errors"
	"fmt"
	"time"

	"github.com/nguyentantai21042004/audio-journal/pkg/executor"
)

var (
	// ErrNoOutput means a tool exited cleanly but printed nothing usable.
	ErrNoOutput = errors.New("tool produced no output")
	// ErrNoTranscript means summarization was requested before transcription.
	ErrNoTranscript = errors.New("entry has no transcript")
)

// Stage names one step of the pipeline.
type Stage int

const (
	StageNone Stage = iota
	StageIngest
	StageTranscribe
	StageSummarize
	StageExport
)

func (s Stage) String() string {
	switch s {
	case StageNone:
		return "none"
	case StageIngest:
		return "ingest"
	case StageTranscribe:
		return "transcribe"
	case StageSummarize:
		return "summarize"
	case StageExport:
		return "export"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// State is the furthest point an entry has reached.
type State int

const (
	StateNew State = iota
	StateIngested
	StateTranscribed
	StateSummarized
	StateExported
	StateExportSkipped
)

func (s State) String() string {
	switch s {
	case StateNew:
		return "new"
	case StateIngested:
		return "ingested"
	case StateTranscribed:
		return "transcribed"
	case StateSummarized:
		return "summarized"
	case StateExported:
		return "exported"
	case StateExportSkipped:
		return "export-skipped"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// StageError reports a failed stage. Err usually wraps *executor.ToolError.
type StageError struct {
	Stage   Stage
	RawPath string
	Err     error
}

func (e *StageError) Error() string {
	if e.RawPath == "" {
		return fmt.Sprintf("%s failed: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("%s failed for %s: %v", e.Stage, e.RawPath, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Stderr returns the failing tool's error stream, if a tool was involved.
func (e *StageError) Stderr() string {
	var toolErr *executor.ToolError
	if errors.As(e.Err, &toolErr) {
		return toolErr.Stderr
	}
	return ""
}

// ExportStatus distinguishes an unconfigured export from a failed one.
type ExportStatus int

const (
	ExportSkipped ExportStatus = iota
	ExportSucceeded
	ExportFailed
)

func (s ExportStatus) String() string {
	switch s {
	case ExportSkipped:
		return "skipped"
	case ExportSucceeded:
		return "succeeded"
	case ExportFailed:
		return "failed"
	default:
		return fmt.Sprintf("export(%d)", int(s))
	}
}

// ExportOutcome is the non-blocking result of the export stage.
type ExportOutcome struct {
	Status  ExportStatus
	Message string
	Err     error
}

// ExportRequest carries everything the export tool receives.
type ExportRequest struct {
	RawPath        string
	TranscriptPath string
	Summary        string
	Tags           []string
}

// ImportRequest describes an existing audio file brought into the catalog.
type ImportRequest struct {
	// Name is the source file name; its extension selects the media type
	// and an embedded date (2024-01-15, 20240115, 2024_01_15) dates the entry.
	Name string
	Data []byte
	// ModTime dates the entry when Name carries no date.
	ModTime time.Time
	// DisplayName is stored as the entry title.
	DisplayName string
}

// Result aggregates one pipeline run so callers can render partial progress.
type Result struct {
	RawMediaPath string
	State        State
	Transcript   string
	Summary      string
	Export       ExportOutcome
	FailedStage  Stage
	Err          error
}

// Failed reports whether a core stage failed. Export problems are warnings.
func (r Result) Failed() bool {
	return r.FailedStage != StageNone
}

// ExportMessage returns the human-readable export status.
func (r Result) ExportMessage() string {
	return r.Export.Message
}
