package supervisor_test

import (
	"bytes"
	"context"
	"io"
	"iter"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.goodgym.dev/launcher/internal/adapters/telemetry"
	"go.goodgym.dev/launcher/internal/core/domain"
	"go.goodgym.dev/launcher/internal/core/ports"
	"go.goodgym.dev/launcher/internal/core/ports/mocks"
	"go.goodgym.dev/launcher/internal/engine/supervisor"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

const python = "/usr/bin/python3"

type fixture struct {
	executor *mocks.MockExecutor
	watcher  *mocks.MockWatcher
	store    *mocks.MockRunStore
	logger   *mocks.MockLogger
	sup      *supervisor.Supervisor
	manifest *domain.Manifest
	stdout   *bytes.Buffer
}

func newFixture(t *testing.T, withScript bool) *fixture {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	ctrl := gomock.NewController(t)
	f := &fixture{
		executor: mocks.NewMockExecutor(ctrl),
		watcher:  mocks.NewMockWatcher(ctrl),
		store:    mocks.NewMockRunStore(ctrl),
		logger:   mocks.NewMockLogger(ctrl),
		stdout:   &bytes.Buffer{},
	}
	f.logger.EXPECT().Debug(gomock.Any()).AnyTimes()

	f.sup = supervisor.NewSupervisor(f.executor, f.watcher, f.store, telemetry.NewNoOpTracer(), f.logger)
	start := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
	calls := 0
	f.sup.SetClock(func() time.Time {
		calls++
		return start.Add(time.Duration(calls-1) * time.Minute)
	})

	root := t.TempDir()
	f.manifest = domain.DefaultManifest(root)
	if withScript {
		script := f.manifest.ScriptPath()
		require.NoError(t, os.MkdirAll(filepath.Dir(script), domain.DirPerm))
		require.NoError(t, os.WriteFile(script, []byte("print('serving')\n"), domain.FilePerm))
	}
	return f
}

func (f *fixture) options() supervisor.Options {
	return supervisor.Options{Stdout: f.stdout, Stderr: io.Discard}
}

func (f *fixture) expectRecord(t *testing.T, outcome domain.RunOutcome, exitCode, restarts int) {
	t.Helper()
	f.store.EXPECT().Put(f.manifest.Root, gomock.Any()).DoAndReturn(func(_ string, r domain.RunRecord) error {
		assert.Equal(t, f.manifest.ScriptPath(), r.Script)
		assert.Equal(t, python, r.Interpreter)
		assert.Equal(t, outcome, r.Outcome)
		assert.Equal(t, exitCode, r.ExitCode)
		assert.Equal(t, restarts, r.Restarts)
		assert.Equal(t, time.Minute, r.Duration())
		return nil
	})
}

func TestSupervisor_Run_ScriptMissing(t *testing.T) {
	f := newFixture(t, false)

	err := f.sup.Run(context.Background(), f.manifest, python, f.options())
	require.Error(t, err)
	require.ErrorIs(t, err, domain.ErrServerFileNotFound)

	var zErr *zerr.Error
	require.ErrorAs(t, err, &zErr)
	assert.Equal(t, f.manifest.ScriptPath(), zErr.Metadata()["path"])
	assert.NotErrorIs(t, err, domain.ErrLaunchFailed)
	assert.Empty(t, f.stdout.String(), "nothing is announced for a missing script")
}

func TestSupervisor_Run_ScriptIsDirectory(t *testing.T) {
	f := newFixture(t, false)
	require.NoError(t, os.MkdirAll(f.manifest.ScriptPath(), domain.DirPerm))

	err := f.sup.Run(context.Background(), f.manifest, python, f.options())
	require.ErrorIs(t, err, domain.ErrServerFileNotFound)
}

func TestSupervisor_Run_CleanExit(t *testing.T) {
	f := newFixture(t, true)

	f.executor.EXPECT().Run(gomock.Any(), gomock.Any(), f.stdout, io.Discard).
		DoAndReturn(func(_ context.Context, proc *domain.ServerProcess, _, _ io.Writer) error {
			assert.Equal(t, []string{python, f.manifest.ScriptPath()}, proc.Command())
			assert.Equal(t, f.manifest.Root, proc.Dir)
			assert.Equal(t, domain.DefaultStopGrace, proc.StopGrace)
			assert.False(t, proc.Terminal)
			return nil
		}).Times(1)
	f.expectRecord(t, domain.OutcomeExited, 0, 0)

	require.NoError(t, f.sup.Run(context.Background(), f.manifest, python, f.options()))

	out := f.stdout.String()
	assert.Contains(t, out, "Starting Good-GYM Exercise API")
	assert.Contains(t, out, "http://localhost:8001")
	assert.Contains(t, out, "ws://localhost:8001")
	assert.NotContains(t, out, "stopped by user")
}

func TestSupervisor_Run_NonZeroExit(t *testing.T) {
	f := newFixture(t, true)

	f.executor.EXPECT().Run(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&domain.ServerExitError{Code: 2})
	f.expectRecord(t, domain.OutcomeFailed, 2, 0)

	err := f.sup.Run(context.Background(), f.manifest, python, f.options())
	require.Error(t, err)
	require.ErrorIs(t, err, domain.ErrLaunchFailed)

	var exitErr *domain.ServerExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
	assert.ErrorContains(t, err, "server exited with status 2")
}

func TestSupervisor_Run_KilledBySignal(t *testing.T) {
	f := newFixture(t, true)

	f.executor.EXPECT().Run(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&domain.ServerExitError{Code: -1, Signal: "killed"})
	f.expectRecord(t, domain.OutcomeFailed, -1, 0)

	err := f.sup.Run(context.Background(), f.manifest, python, f.options())
	require.ErrorIs(t, err, domain.ErrLaunchFailed)
	assert.ErrorContains(t, err, "server killed by signal killed")

	var zErr *zerr.Error
	require.ErrorAs(t, err, &zErr)
	assert.Equal(t, "killed", zErr.Metadata()["signal"])
	assert.Equal(t, -1, zErr.Metadata()["exit_code"])
}

func TestSupervisor_Run_SpawnFailure(t *testing.T) {
	f := newFixture(t, true)

	spawnErr := domain.WithKind(zerr.New("exec format error"), domain.ErrLaunchFailed)
	f.executor.EXPECT().Run(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(spawnErr)
	f.expectRecord(t, domain.OutcomeFailed, -1, 0)

	err := f.sup.Run(context.Background(), f.manifest, python, f.options())
	require.ErrorIs(t, err, domain.ErrLaunchFailed)
}

func TestSupervisor_Run_InterruptIsSuccess(t *testing.T) {
	f := newFixture(t, true)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	f.executor.EXPECT().Run(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(runCtx context.Context, _ *domain.ServerProcess, _, _ io.Writer) error {
			cancel()
			<-runCtx.Done()
			// The interrupted server may report any status.
			return &domain.ServerExitError{Code: 130}
		})
	f.expectRecord(t, domain.OutcomeInterrupted, 0, 0)

	require.NoError(t, f.sup.Run(ctx, f.manifest, python, f.options()))
	assert.Contains(t, f.stdout.String(), "Server stopped by user")
}

func TestSupervisor_Run_JournalFailureIsOnlyAWarning(t *testing.T) {
	f := newFixture(t, true)

	f.executor.EXPECT().Run(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	f.store.EXPECT().Put(gomock.Any(), gomock.Any()).Return(zerr.New("disk full"))
	f.logger.EXPECT().Warn(gomock.Any()).Times(1)

	require.NoError(t, f.sup.Run(context.Background(), f.manifest, python, f.options()))
}

func TestSupervisor_Run_TerminalOption(t *testing.T) {
	f := newFixture(t, true)

	f.executor.EXPECT().Run(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, proc *domain.ServerProcess, _, _ io.Writer) error {
			assert.True(t, proc.Terminal)
			return nil
		})
	f.store.EXPECT().Put(gomock.Any(), gomock.Any()).Return(nil)

	opts := f.options()
	opts.Terminal = true
	require.NoError(t, f.sup.Run(context.Background(), f.manifest, python, opts))
}

// fakeEvents backs a MockWatcher with a channel that Stop closes.
type fakeEvents struct {
	ch   chan ports.WatchEvent
	once sync.Once
}

func (e *fakeEvents) seq() iter.Seq[ports.WatchEvent] {
	return func(yield func(ports.WatchEvent) bool) {
		for ev := range e.ch {
			if !yield(ev) {
				return
			}
		}
	}
}

func (e *fakeEvents) stop() error {
	e.once.Do(func() { close(e.ch) })
	return nil
}

func TestSupervisor_Run_WatchRestartsOnChange(t *testing.T) {
	f := newFixture(t, true)
	events := &fakeEvents{ch: make(chan ports.WatchEvent, 1)}
	serverDir := filepath.Dir(f.manifest.ScriptPath())

	f.watcher.EXPECT().Start(gomock.Any(), serverDir).Return(nil)
	f.watcher.EXPECT().Events().Return(events.seq())
	f.watcher.EXPECT().Stop().DoAndReturn(events.stop).MinTimes(1)

	started := make(chan struct{})
	gomock.InOrder(
		f.executor.EXPECT().Run(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(runCtx context.Context, _ *domain.ServerProcess, _, _ io.Writer) error {
				close(started)
				<-runCtx.Done()
				return runCtx.Err()
			}),
		f.executor.EXPECT().Run(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil),
	)
	f.expectRecord(t, domain.OutcomeExited, 0, 1)

	go func() {
		<-started
		events.ch <- ports.WatchEvent{Path: f.manifest.ScriptPath(), Operation: ports.OpWrite}
	}()

	opts := f.options()
	opts.Watch = true
	require.NoError(t, f.sup.Run(context.Background(), f.manifest, python, opts))

	assert.Contains(t, f.stdout.String(), "goodgym_api.py changed, restarting server")
}

func TestSupervisor_Run_WatchFailureFallsBack(t *testing.T) {
	f := newFixture(t, true)

	f.watcher.EXPECT().Start(gomock.Any(), gomock.Any()).Return(zerr.New("inotify limit reached"))
	f.logger.EXPECT().Warn(gomock.Any()).Times(1)
	f.executor.EXPECT().Run(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	f.expectRecord(t, domain.OutcomeExited, 0, 0)

	opts := f.options()
	opts.Watch = true
	require.NoError(t, f.sup.Run(context.Background(), f.manifest, python, opts))
}
