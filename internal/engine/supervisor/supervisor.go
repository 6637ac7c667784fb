// Package supervisor launches the server script and owns its single child process.
package supervisor

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.goodgym.dev/launcher/internal/core/domain"
	"go.goodgym.dev/launcher/internal/core/ports"
	"go.goodgym.dev/launcher/internal/ui/report"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Options control one supervised run.
type Options struct {
	// Watch restarts the server when files next to the script change.
	Watch bool
	// Terminal runs the server in a pseudo-terminal.
	Terminal bool
	// Stdout receives the banner and the server's output. Stderr receives the server's errors.
	Stdout io.Writer
	Stderr io.Writer
}

// Supervisor runs the server script and records how the run ended.
type Supervisor struct {
	executor ports.Executor
	watcher  ports.Watcher
	store    ports.RunStore
	tracer   ports.Tracer
	logger   ports.Logger
	now      func() time.Time
}

// NewSupervisor creates a new Supervisor.
func NewSupervisor(
	executor ports.Executor,
	watcher ports.Watcher,
	store ports.RunStore,
	tracer ports.Tracer,
	logger ports.Logger,
) *Supervisor {
	return &Supervisor{
		executor: executor,
		watcher:  watcher,
		store:    store,
		tracer:   tracer,
		logger:   logger,
		now:      time.Now,
	}
}

// Run locates the server script of m and runs it under interpreter until it exits.
//
// A missing script fails with domain.ErrServerFileNotFound before anything is
// spawned. Cancelling ctx is an operator stop: the server is interrupted and
// Run returns nil. A nonzero exit is returned as a *domain.ServerExitError
// tagged with domain.ErrLaunchFailed.
func (s *Supervisor) Run(ctx context.Context, m *domain.Manifest, interpreter string, opts Options) error {
	stdout, stderr := opts.Stdout, opts.Stderr
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	script, err := locate(m)
	if err != nil {
		return err
	}

	ctx, span := s.tracer.Start(ctx, "launch")
	defer span.End()
	span.SetAttribute("script", script)
	span.SetAttribute("interpreter", interpreter)

	printer := report.NewPrinter(stdout)
	printer.Banner(m)

	proc := &domain.ServerProcess{
		Interpreter: interpreter,
		Script:      script,
		Dir:         m.Root,
		StopGrace:   m.StopGrace,
		Terminal:    opts.Terminal,
	}

	record := domain.RunRecord{
		Script:      script,
		Interpreter: interpreter,
		StartedAt:   s.now(),
	}

	var restarts int
	if opts.Watch && s.watcher != nil {
		restarts, err = s.runWatching(ctx, proc, printer, stdout, stderr)
	} else {
		err = s.executor.Run(ctx, proc, stdout, stderr)
	}

	record.FinishedAt = s.now()
	record.Restarts = restarts
	span.SetAttribute("restarts", restarts)

	switch {
	case ctx.Err() != nil:
		record.Outcome = domain.OutcomeInterrupted
		printer.Stopped()
		err = nil
	case err == nil:
		record.Outcome = domain.OutcomeExited
	default:
		record.Outcome = domain.OutcomeFailed
		record.ExitCode = -1
		var exitErr *domain.ServerExitError
		if errors.As(err, &exitErr) {
			record.ExitCode = exitErr.Code
			err = zerr.With(zerr.Wrap(err, domain.ErrLaunchFailed.Error()), "exit_code", exitErr.Code)
			if exitErr.Signal != "" {
				err = zerr.With(err, "signal", exitErr.Signal)
			}
		}
		span.RecordError(err)
	}

	s.journal(m.Root, record)
	return err
}

// locate returns the absolute script path, or ErrServerFileNotFound when it is missing or not a file.
func locate(m *domain.Manifest) (string, error) {
	script := m.ScriptPath()
	if abs, err := filepath.Abs(script); err == nil {
		script = abs
	}

	info, err := os.Stat(script)
	if err == nil && !info.IsDir() {
		return script, nil
	}

	notFound := zerr.Wrap(domain.ErrServerFileNotFound, "cannot launch server")
	return "", zerr.With(notFound, "path", script)
}

// runWatching runs the server and restarts it whenever the watcher reports a content change.
// It returns when the server exits on its own or ctx is done.
func (s *Supervisor) runWatching(
	ctx context.Context,
	proc *domain.ServerProcess,
	printer *report.Printer,
	stdout, stderr io.Writer,
) (int, error) {
	dir := filepath.Dir(proc.Script)

	watchCtx, stopWatching := context.WithCancel(ctx)
	defer stopWatching()

	if err := s.watcher.Start(watchCtx, dir); err != nil {
		s.logger.Warn("watch disabled: " + err.Error())
		return 0, s.executor.Run(ctx, proc, stdout, stderr)
	}

	changes := make(chan string, 1)
	g, gctx := errgroup.WithContext(watchCtx)

	g.Go(func() error {
		for event := range s.watcher.Events() {
			select {
			case changes <- event.Path:
			default:
			}
		}
		return nil
	})

	var restarts int
	var runErr error
	g.Go(func() error {
		defer stopWatching()
		defer func() { _ = s.watcher.Stop() }()

		for {
			runCtx, cancelRun := context.WithCancel(gctx)
			done := make(chan error, 1)
			go func() { done <- s.executor.Run(runCtx, proc, stdout, stderr) }()

			select {
			case runErr = <-done:
				cancelRun()
				return nil
			case path := <-changes:
				cancelRun()
				<-done
				if ctx.Err() != nil {
					return nil
				}
				restarts++
				if rel, err := filepath.Rel(dir, path); err == nil {
					path = rel
				}
				printer.Restarting(path)
			}
		}
	})

	if err := g.Wait(); err != nil {
		return restarts, err
	}
	return restarts, runErr
}

func (s *Supervisor) journal(root string, record domain.RunRecord) {
	if s.store == nil {
		return
	}
	if err := s.store.Put(root, record); err != nil {
		s.logger.Warn("could not record run: " + err.Error())
	}
}
