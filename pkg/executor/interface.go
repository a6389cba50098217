package executor

import "context"

// Result holds the captured streams and exit status of one tool run.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Executor runs external analysis tools to completion.
// A non-zero exit is reported as a *ToolError alongside the captured Result.
type Executor interface {
	Run(ctx context.Context, name string, args ...string) (Result, error)
	RunInDir(ctx context.Context, dir string, name string, args ...string) (Result, error)
}
