package executor

import (
	"errors"
	"fmt"
	"strings"
)

// ErrCanceled marks a run that was terminated because its context ended.
var ErrCanceled = errors.New("tool run canceled")

// ToolError describes a tool that could not be started, exited non-zero,
// or was killed. Stderr is the tool's full error stream, unmodified.
type ToolError struct {
	Name     string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *ToolError) Error() string {
	msg := fmt.Sprintf("command '%s' failed", e.Name)
	if e.ExitCode > 0 {
		msg = fmt.Sprintf("command '%s' exited with code %d", e.Name, e.ExitCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += "\nstderr: " + s
	}
	return msg
}

func (e *ToolError) Unwrap() error {
	return e.Err
}

// Canceled reports whether the run was stopped by context cancellation.
func (e *ToolError) Canceled() bool {
	return errors.Is(e.Err, ErrCanceled)
}
