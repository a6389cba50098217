package executor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func skipWithoutShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires /bin/sh")
	}
}

func TestRun(t *testing.T) {
	skipWithoutShell(t)

	tests := []struct {
		name       string
		script     string
		wantStdout string
		wantStderr string
		wantCode   int
		wantErr    bool
	}{
		{
			name:       "success keeps stderr",
			script:     "echo hello; echo loading model >&2",
			wantStdout: "hello\n",
			wantStderr: "loading model\n",
		},
		{
			name:       "non-zero exit",
			script:     "echo partial; echo boom >&2; exit 3",
			wantStdout: "partial\n",
			wantStderr: "boom\n",
			wantCode:   3,
			wantErr:    true,
		},
		{
			name: "empty output is not an error",
		},
	}

	exec := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := exec.Run(context.Background(), "/bin/sh", "-c", tt.script)
			assert.Equal(t, tt.wantStdout, res.Stdout)
			assert.Equal(t, tt.wantStderr, res.Stderr)
			assert.Equal(t, tt.wantCode, res.ExitCode)

			if !tt.wantErr {
				require.NoError(t, err)
				return
			}
			var toolErr *ToolError
			require.ErrorAs(t, err, &toolErr)
			assert.Equal(t, tt.wantCode, toolErr.ExitCode)
			assert.Equal(t, tt.wantStderr, toolErr.Stderr)
			assert.False(t, toolErr.Canceled())
			assert.Contains(t, err.Error(), "boom")
		})
	}
}

func TestRunMissingBinary(t *testing.T) {
	res, err := New().Run(context.Background(), filepath.Join(t.TempDir(), "no-such-tool"))

	var toolErr *ToolError
	require.ErrorAs(t, err, &toolErr)
	assert.Equal(t, -1, res.ExitCode)
	assert.Equal(t, -1, toolErr.ExitCode)
	assert.NotNil(t, toolErr.Unwrap())
}

func TestRunCanceled(t *testing.T) {
	skipWithoutShell(t)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := New().Run(ctx, "/bin/sh", "-c", "exec sleep 5")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCanceled))

	var toolErr *ToolError
	require.ErrorAs(t, err, &toolErr)
	assert.True(t, toolErr.Canceled())
}

func TestRunInDir(t *testing.T) {
	skipWithoutShell(t)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "marker"), []byte("x"), 0644))

	res, err := New().RunInDir(context.Background(), dir, "/bin/sh", "-c", "ls")
	require.NoError(t, err)
	assert.Equal(t, "marker\n", res.Stdout)
}
