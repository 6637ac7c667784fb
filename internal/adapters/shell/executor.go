// Package shell provides the executor that runs the server under its interpreter.
package shell

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/creack/pty"
	"go.goodgym.dev/launcher/internal/core/domain"
	"go.goodgym.dev/launcher/internal/core/ports"
	"go.trai.ch/zerr"
)

// Executor implements ports.Executor using os/exec and pty.
type Executor struct {
	logger ports.Logger
}

var _ ports.Executor = (*Executor)(nil)

// NewExecutor creates a new Executor.
func NewExecutor(logger ports.Logger) *Executor {
	return &Executor{
		logger: logger,
	}
}

// Run starts the server process in a PTY or with standard pipes and waits for it to exit.
func (e *Executor) Run(ctx context.Context, proc *domain.ServerProcess, stdout, stderr io.Writer) error {
	if proc == nil || proc.Interpreter == "" {
		return domain.WithKind(zerr.New("no interpreter to run the server with"), domain.ErrLaunchFailed)
	}

	cmd := exec.CommandContext(ctx, proc.Interpreter, proc.Script) //nolint:gosec // interpreter comes from the manifest
	cmd.Dir = proc.Dir
	cmd.Env = os.Environ()

	// Interrupt first so the server can shut down cleanly; WaitDelay kills it afterwards.
	cmd.Cancel = func() error {
		return cmd.Process.Signal(os.Interrupt)
	}
	cmd.WaitDelay = stopGrace(proc)

	e.logger.Debug("exec " + strings.Join(proc.Command(), " "))

	var wait func() error
	if proc.Terminal {
		w, err := startPTY(cmd, stdout, cmd.WaitDelay)
		if err != nil {
			return startError(err, proc)
		}
		wait = w
	} else {
		cmd.Stdin = os.Stdin
		cmd.Stdout = stdout
		cmd.Stderr = stderr
		if err := cmd.Start(); err != nil {
			return startError(err, proc)
		}
		wait = cmd.Wait
	}

	e.logger.Debug("server pid " + strconv.Itoa(cmd.Process.Pid))

	err := wait()
	if ctx.Err() != nil {
		return zerr.Wrap(ctx.Err(), "server interrupted")
	}
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		exit := &domain.ServerExitError{Code: exitErr.ExitCode(), Err: err}
		if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
			exit.Signal = ws.Signal().String()
		}
		return exit
	}
	return domain.WithKind(zerr.Wrap(err, "failed waiting for server"), domain.ErrLaunchFailed)
}

// startPTY starts cmd attached to a new pseudo-terminal and copies its output to stdout.
// The returned function waits for the process and then for the copy to drain.
func startPTY(cmd *exec.Cmd, stdout io.Writer, drain time.Duration) (func() error, error) {
	ptmx, err := pty.Start(cmd)
	if err != nil {
		return nil, err
	}
	_ = pty.InheritSize(os.Stdout, ptmx)

	ioDone := make(chan struct{})
	go func() {
		defer close(ioDone)
		// PTYs merge stdout and stderr.
		_, _ = io.Copy(stdout, ptmx)
	}()

	return func() error {
		err := cmd.Wait()

		// A grandchild may still hold the terminal open.
		select {
		case <-ioDone:
		case <-time.After(drain):
		}
		_ = ptmx.Close()
		<-ioDone

		return err
	}, nil
}

func startError(err error, proc *domain.ServerProcess) error {
	err = zerr.Wrap(err, domain.ErrLaunchFailed.Error())
	err = zerr.With(err, "interpreter", proc.Interpreter)
	err = zerr.With(err, "script", proc.Script)
	return domain.WithKind(err, domain.ErrLaunchFailed)
}

func stopGrace(proc *domain.ServerProcess) time.Duration {
	if proc.StopGrace > 0 {
		return proc.StopGrace
	}
	return domain.DefaultStopGrace
}
