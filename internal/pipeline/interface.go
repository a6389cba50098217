package pipeline

import "context"

// Pipeline drives journal entries through ingest, transcribe, summarize
// and export. Every method is safe for concurrent use on distinct entries.
type Pipeline interface {
	// Ingest persists raw audio under a fresh name and returns its path.
	Ingest(ctx context.Context, data []byte, ext string) (string, error)
	// Transcribe (re)creates the transcript of an ingested entry.
	Transcribe(ctx context.Context, rawPath string) (string, error)
	// Summarize (re)creates the summary from the entry's transcript.
	Summarize(ctx context.Context, rawPath string) (string, error)
	// Export hands a summarized entry to the optional export tool.
	Export(ctx context.Context, rawPath string) ExportOutcome

	// Process runs every stage for new raw audio.
	Process(ctx context.Context, data []byte, ext string) Result
	// ProcessAsync runs Process on its own goroutine and delivers the
	// result on the returned channel.
	ProcessAsync(ctx context.Context, data []byte, ext string) <-chan Result
	// Import ingests an existing audio file and runs the remaining stages.
	Import(ctx context.Context, req ImportRequest) Result
	// Resume runs only the stages whose artifacts are still missing.
	Resume(ctx context.Context, rawPath string) Result

	// SetTags replaces the tags recorded for an entry.
	SetTags(rawPath string, tags []string) error
}

// Step is one external analysis capability: it reads the artifact at
// inputPath and produces text.
type Step interface {
	Run(ctx context.Context, inputPath string) (Output, error)
}

// Output is what a Step produced. Diagnostics holds informational text the
// engine printed alongside its result.
type Output struct {
	Text        string
	Diagnostics string
}

// Exporter publishes a finished entry to a third-party destination.
type Exporter interface {
	Export(ctx context.Context, req ExportRequest) ExportOutcome
}
