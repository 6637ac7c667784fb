package shell_test

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.goodgym.dev/launcher/internal/adapters/shell"
	"go.goodgym.dev/launcher/internal/core/domain"
	"go.goodgym.dev/launcher/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

// newProcess writes body as a shell script and returns a process that runs it under sh.
func newProcess(t *testing.T, body string) *domain.ServerProcess {
	t.Helper()
	dir := t.TempDir()
	script := filepath.Join(dir, "server.sh")
	require.NoError(t, os.WriteFile(script, []byte(body), domain.FilePerm))

	return &domain.ServerProcess{
		Interpreter: "sh",
		Script:      script,
		Dir:         dir,
		StopGrace:   time.Second,
	}
}

func newExecutor(t *testing.T) *shell.Executor {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Debug(gomock.Any()).AnyTimes()
	return shell.NewExecutor(mockLogger)
}

func TestExecutor_Run_Success(t *testing.T) {
	proc := newProcess(t, "echo line1\necho line2\necho oops >&2\n")

	var stdout, stderr bytes.Buffer
	err := newExecutor(t).Run(context.Background(), proc, &stdout, &stderr)
	require.NoError(t, err)

	assert.Equal(t, "line1\nline2\n", stdout.String())
	assert.Equal(t, "oops\n", stderr.String())
}

func TestExecutor_Run_WorkingDirectory(t *testing.T) {
	proc := newProcess(t, "pwd\n")

	var stdout bytes.Buffer
	require.NoError(t, newExecutor(t).Run(context.Background(), proc, &stdout, io.Discard))

	want, err := filepath.EvalSymlinks(proc.Dir)
	require.NoError(t, err)
	got, err := filepath.EvalSymlinks(strings.TrimSpace(stdout.String()))
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestExecutor_Run_ScriptIsSoleArgument(t *testing.T) {
	proc := newProcess(t, "echo \"$#:$0\"\n")

	var stdout bytes.Buffer
	require.NoError(t, newExecutor(t).Run(context.Background(), proc, &stdout, io.Discard))

	assert.Equal(t, "0:"+proc.Script+"\n", stdout.String())
}

func TestExecutor_Run_NonZeroExit(t *testing.T) {
	proc := newProcess(t, "exit 3\n")

	err := newExecutor(t).Run(context.Background(), proc, io.Discard, io.Discard)
	require.Error(t, err)

	var exitErr *domain.ServerExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 3, exitErr.Code)
	require.ErrorIs(t, err, domain.ErrLaunchFailed)
}

func TestExecutor_Run_KilledBySignal(t *testing.T) {
	proc := newProcess(t, "kill -9 $$\n")

	err := newExecutor(t).Run(context.Background(), proc, io.Discard, io.Discard)
	require.ErrorIs(t, err, domain.ErrLaunchFailed)

	var exitErr *domain.ServerExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, -1, exitErr.Code)
	assert.Equal(t, "killed", exitErr.Signal)
	assert.Equal(t, "server killed by signal killed", err.Error())
}

func TestExecutor_Run_InterpreterMissing(t *testing.T) {
	proc := newProcess(t, "echo unreachable\n")
	proc.Interpreter = filepath.Join(t.TempDir(), "no-such-python")

	err := newExecutor(t).Run(context.Background(), proc, io.Discard, io.Discard)
	require.Error(t, err)
	require.ErrorIs(t, err, domain.ErrLaunchFailed)

	var exitErr *domain.ServerExitError
	assert.NotErrorAs(t, err, &exitErr)
}

func TestExecutor_Run_NoInterpreter(t *testing.T) {
	err := newExecutor(t).Run(context.Background(), &domain.ServerProcess{}, io.Discard, io.Discard)
	require.ErrorIs(t, err, domain.ErrLaunchFailed)

	err = newExecutor(t).Run(context.Background(), nil, io.Discard, io.Discard)
	require.ErrorIs(t, err, domain.ErrLaunchFailed)
}

func TestExecutor_Run_InterruptIsForwarded(t *testing.T) {
	proc := newProcess(t, "trap 'echo stopping; exit 0' INT\necho ready\nwhile :; do sleep 0.1; done\n")

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	var stdout bytes.Buffer
	err := newExecutor(t).Run(ctx, proc, &stdout, io.Discard)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	assert.Contains(t, stdout.String(), "ready")
	assert.Contains(t, stdout.String(), "stopping")
}

func TestExecutor_Run_KilledAfterGrace(t *testing.T) {
	proc := newProcess(t, "trap '' INT\nwhile :; do sleep 0.1; done\n")
	proc.StopGrace = 200 * time.Millisecond

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := newExecutor(t).Run(ctx, proc, io.Discard, io.Discard)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestExecutor_Run_Terminal(t *testing.T) {
	proc := newProcess(t, "if [ -t 1 ]; then echo tty; else echo notty; fi\nexit 4\n")
	proc.Terminal = true

	var stdout bytes.Buffer
	err := newExecutor(t).Run(context.Background(), proc, &stdout, io.Discard)

	var exitErr *domain.ServerExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 4, exitErr.Code)
	assert.Contains(t, stdout.String(), "tty")
	assert.NotContains(t, stdout.String(), "notty")
}
