package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"
)

// waitDelay bounds how long Wait blocks on inherited pipes after a kill.
const waitDelay = 2 * time.Second

type implExecutor struct{}

// New creates a new Executor instance
func New() Executor {
	return &implExecutor{}
}

// Run runs an external command with the given arguments
func (e *implExecutor) Run(ctx context.Context, name string, args ...string) (Result, error) {
	return e.RunInDir(ctx, "", name, args...)
}

// RunInDir runs an external command in a specific working directory.
// An empty dir keeps the current working directory.
func (e *implExecutor) RunInDir(ctx context.Context, dir string, name string, args ...string) (Result, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.WaitDelay = waitDelay

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()
	res := Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	if cmd.ProcessState != nil {
		res.ExitCode = cmd.ProcessState.ExitCode()
	}

	if runErr == nil {
		return res, nil
	}

	toolErr := &ToolError{
		Name:     name,
		ExitCode: res.ExitCode,
		Stderr:   res.Stderr,
	}

	var exitErr *exec.ExitError
	switch {
	case ctx.Err() != nil:
		// Killed processes report -1; keep that but surface the cancellation.
		toolErr.Err = fmt.Errorf("%w: %v", ErrCanceled, ctx.Err())
	case errors.As(runErr, &exitErr):
		// Non-zero exit: ExitCode and Stderr say everything.
	default:
		// Never started (missing binary, permissions).
		res.ExitCode = -1
		toolErr.ExitCode = -1
		toolErr.Err = runErr
	}

	return res, toolErr
}
