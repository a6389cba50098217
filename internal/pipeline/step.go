package pipeline

import (
	"context"

	"github.com/nguyentantai21042004/audio-journal/internal/config"
	"github.com/nguyentantai21042004/audio-journal/pkg/executor"
)

// ToolStep runs `Command Args... <input>` and returns its standard output.
type ToolStep struct {
	executor executor.Executor
	tool     config.ToolConfig
}

func NewToolStep(exec executor.Executor, tool config.ToolConfig) *ToolStep {
	return &ToolStep{executor: exec, tool: tool}
}

func (s *ToolStep) Run(ctx context.Context, inputPath string) (Output, error) {
	if s.tool.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.tool.Timeout)
		defer cancel()
	}

	args := append(append([]string{}, s.tool.Args...), inputPath)
	res, err := s.executor.Run(ctx, s.tool.Command, args...)
	if err != nil {
		return Output{Diagnostics: res.Stderr}, err
	}
	return Output{Text: res.Stdout, Diagnostics: res.Stderr}, nil
}
