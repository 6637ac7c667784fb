// Package app implements the application layer for the Good-GYM launcher.
package app

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.goodgym.dev/launcher/internal/adapters/detector" //nolint:depguard // Output mode is an app concern
	"go.goodgym.dev/launcher/internal/core/domain"
	"go.goodgym.dev/launcher/internal/core/ports"
	"go.goodgym.dev/launcher/internal/engine/depcheck"
	"go.goodgym.dev/launcher/internal/engine/supervisor"
	"go.goodgym.dev/launcher/internal/ui/report"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	resolver     ports.InterpreterResolver
	checker      *depcheck.Checker
	supervisor   *supervisor.Supervisor
	store        ports.RunStore
	logger       ports.Logger
	stdout       io.Writer
	stderr       io.Writer
	detect       func() detector.OutputMode
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	resolver ports.InterpreterResolver,
	checker *depcheck.Checker,
	sup *supervisor.Supervisor,
	store ports.RunStore,
	log ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		resolver:     resolver,
		checker:      checker,
		supervisor:   sup,
		store:        store,
		logger:       log,
		stdout:       os.Stdout,
		stderr:       os.Stderr,
		detect:       detector.DetectEnvironment,
	}
}

// WithOutput sets the streams that receive the launcher's report and the server's output.
func (a *App) WithOutput(stdout, stderr io.Writer) *App {
	a.stdout = stdout
	a.stderr = stderr
	return a
}

// WithDetector overrides terminal auto-detection.
func (a *App) WithDetector(detect func() detector.OutputMode) *App {
	a.detect = detect
	return a
}

// StartOptions holds configuration for the start command.
type StartOptions struct {
	Root       string
	Watch      bool
	OutputMode string
}

// Start checks the dependencies and, when all resolve, runs the server until it
// exits or ctx is cancelled.
//
// A cancelled ctx from the check onwards is an operator stop and yields nil.
func (a *App) Start(ctx context.Context, opts StartOptions) error {
	printer := report.NewPrinter(a.stdout)
	printer.Title()

	m, interpreter, err := a.prepare(opts.Root)
	if err != nil {
		return err
	}

	printer.Checking(interpreter)
	result, err := a.checker.Check(ctx, m.Root, interpreter, m.Requirements)
	if ctx.Err() != nil {
		printer.Stopped()
		return nil
	}
	if err != nil {
		return zerr.Wrap(err, "dependency check failed")
	}
	printer.Dependencies(result)
	if !result.OK() {
		return result.Err()
	}

	if !a.wait(ctx, m.StartDelay) {
		printer.Stopped()
		return nil
	}

	mode := detector.ResolveMode(a.detect(), opts.OutputMode)
	a.logger.Debug("server output mode: " + mode.String())

	return a.supervisor.Run(ctx, m, interpreter, supervisor.Options{
		Watch:    opts.Watch,
		Terminal: mode.IsTerminal(),
		Stdout:   a.stdout,
		Stderr:   a.stderr,
	})
}

// Check runs the dependency check alone and lists every requirement with its status.
func (a *App) Check(ctx context.Context, root string) error {
	printer := report.NewPrinter(a.stdout)
	printer.Title()

	m, interpreter, err := a.prepare(root)
	if err != nil {
		return err
	}

	printer.Checking(interpreter)
	result, err := a.checker.Check(ctx, m.Root, interpreter, m.Requirements)
	if ctx.Err() != nil {
		printer.Stopped()
		return nil
	}
	if err != nil {
		return zerr.Wrap(err, "dependency check failed")
	}
	printer.Requirements(result)
	printer.Dependencies(result)
	return result.Err()
}

// Status prints the last journaled run of the configured server script.
func (a *App) Status(_ context.Context, root string) error {
	m, err := a.load(root)
	if err != nil {
		return err
	}

	script := m.ScriptPath()
	record, err := a.store.Get(m.Root, script)
	if err != nil {
		return zerr.Wrap(err, "failed to load last run")
	}

	report.NewPrinter(a.stdout).Status(script, record)
	return nil
}

func (a *App) prepare(root string) (*domain.Manifest, string, error) {
	m, err := a.load(root)
	if err != nil {
		return nil, "", err
	}

	interpreter, err := a.resolver.Resolve(m.Interpreters)
	if err != nil {
		return nil, "", err
	}
	return m, interpreter, nil
}

func (a *App) load(root string) (*domain.Manifest, error) {
	m, err := a.configLoader.Load(root)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}
	return m, nil
}

// wait pauses for d and reports false when ctx is cancelled first.
func (a *App) wait(ctx context.Context, d time.Duration) bool {
	if ctx.Err() != nil {
		return false
	}
	if d <= 0 {
		return true
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

// ResolveRoot returns the launcher's install directory.
// A non-empty override wins; otherwise it is the directory of the running
// executable with symlinks resolved.
func ResolveRoot(override string) (string, error) {
	if override != "" {
		abs, err := filepath.Abs(override)
		if err != nil {
			return "", zerr.With(zerr.Wrap(err, domain.ErrRootNotResolved.Error()), "root", override)
		}
		return abs, nil
	}

	exe, err := os.Executable()
	if err != nil {
		return "", zerr.Wrap(err, domain.ErrRootNotResolved.Error())
	}
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrRootNotResolved.Error()), "executable", exe)
	}
	return filepath.Dir(exe), nil
}
