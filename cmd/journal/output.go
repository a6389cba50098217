package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/audio-journal/internal/catalog"
	"github.com/nguyentantai21042004/audio-journal/internal/pipeline"
	"github.com/nguyentantai21042004/audio-journal/pkg/executor"
	"github.com/nguyentantai21042004/audio-journal/pkg/ui"
)

const snippetLength = 60

// printResult renders a pipeline run and returns an error when a core
// stage failed, so the process exits non-zero.
func printResult(w io.Writer, res pipeline.Result) error {
	if res.RawMediaPath != "" {
		fmt.Fprintln(w, ui.RenderKeyValue("Entry", filepath.Base(res.RawMediaPath)))
	}

	if res.Failed() {
		var stageErr *pipeline.StageError
		if errors.As(res.Err, &stageErr) && stageErr.Stderr() != "" {
			fmt.Fprintln(w, ui.FormatError(res.FailedStage.String()+" failed"))
			fmt.Fprintln(w, ui.FormatMuted(strings.TrimRight(stageErr.Stderr(), "\n")))
		} else {
			fmt.Fprintln(w, ui.FormatError(res.Err.Error()))
		}
		if errors.Is(res.Err, executor.ErrCanceled) {
			fmt.Fprintln(w, ui.FormatWarning("canceled"))
		}
		if res.State >= pipeline.StateIngested {
			fmt.Fprintln(w, ui.FormatInfo("Run 'journal retry "+filepath.Base(res.RawMediaPath)+"' to resume"))
		}
		return fmt.Errorf("%s failed", res.FailedStage)
	}

	fmt.Fprintln(w, ui.FormatSuccess("Transcript and summary saved"))
	fmt.Fprintln(w, ui.RenderKeyValue("Summary", res.Summary))

	switch res.Export.Status {
	case pipeline.ExportSucceeded:
		msg := res.ExportMessage()
		if msg == "" {
			msg = "Export completed"
		}
		fmt.Fprintln(w, ui.FormatSuccess(msg))
	case pipeline.ExportFailed:
		fmt.Fprintln(w, ui.FormatWarning(res.ExportMessage()))
	default:
		fmt.Fprintln(w, ui.FormatMuted(res.ExportMessage()))
	}
	return nil
}

func printEntries(w io.Writer, entries []catalog.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, ui.FormatWarning("No entries found"))
		return
	}

	table := ui.NewTable("Entry", "Date", "Tags", "Status", "Transcript")
	for _, e := range entries {
		table.AddRow(
			e.BaseName,
			e.Date,
			ui.Truncate(strings.Join(e.Tags, ", "), 30),
			entryStatus(e),
			e.Snippet(snippetLength),
		)
	}
	fmt.Fprint(w, table.Render())
	fmt.Fprintln(w, ui.FormatMuted(fmt.Sprintf("Total: %d entries", len(entries))))
}

func entryStatus(e catalog.Entry) string {
	switch {
	case e.HasSummary():
		return "summarized"
	case e.HasTranscript():
		return "transcribed"
	default:
		return "raw"
	}
}

func printEntry(w io.Writer, e catalog.Entry) {
	title := e.Title
	if title == "" {
		title = e.BaseName
	}
	fmt.Fprintln(w, ui.FormatTitle(title))
	fmt.Fprintln(w, ui.RenderKeyValue("Entry", e.BaseName))
	fmt.Fprintln(w, ui.RenderKeyValue("Audio", e.RawMediaPath))
	if e.Date != "" {
		fmt.Fprintln(w, ui.RenderKeyValue("Date", e.Date))
	}
	if len(e.Tags) > 0 {
		fmt.Fprintln(w, ui.RenderKeyValue("Tags", strings.Join(e.Tags, ", ")))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, ui.StyleHeader.Render("Summary"))
	if e.HasSummary() {
		fmt.Fprintln(w, strings.TrimSpace(*e.Summary))
	} else {
		fmt.Fprintln(w, ui.FormatMuted("(none)"))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, ui.StyleHeader.Render("Transcript"))
	if e.HasTranscript() {
		fmt.Fprintln(w, strings.TrimSpace(*e.Transcript))
	} else {
		fmt.Fprintln(w, ui.FormatMuted("(none)"))
	}
}
