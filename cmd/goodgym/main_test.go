package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.goodgym.dev/launcher/internal/adapters/detector"
	"go.goodgym.dev/launcher/internal/adapters/telemetry"
	"go.goodgym.dev/launcher/internal/app"
	"go.goodgym.dev/launcher/internal/core/domain"
	"go.goodgym.dev/launcher/internal/core/ports/mocks"
	"go.goodgym.dev/launcher/internal/engine/depcheck"
	"go.goodgym.dev/launcher/internal/engine/supervisor"
	"go.uber.org/mock/gomock"
)

const python = "/usr/bin/python3"

type harness struct {
	logger   *mocks.MockLogger
	prober   *mocks.MockModuleProber
	executor *mocks.MockExecutor
	store    *mocks.MockRunStore
	manifest *domain.Manifest
	provider ComponentProvider
	stdout   *bytes.Buffer
}

func newHarness(t *testing.T, withScript bool) *harness {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	ctrl := gomock.NewController(t)
	h := &harness{
		logger:   mocks.NewMockLogger(ctrl),
		prober:   mocks.NewMockModuleProber(ctrl),
		executor: mocks.NewMockExecutor(ctrl),
		store:    mocks.NewMockRunStore(ctrl),
		stdout:   &bytes.Buffer{},
	}
	h.logger.EXPECT().Debug(gomock.Any()).AnyTimes()

	h.manifest = domain.DefaultManifest(t.TempDir())
	h.manifest.StartDelay = 0
	if withScript {
		script := h.manifest.ScriptPath()
		require.NoError(t, os.MkdirAll(filepath.Dir(script), domain.DirPerm))
		require.NoError(t, os.WriteFile(script, []byte("print('serving')\n"), domain.FilePerm))
	}

	loader := mocks.NewMockConfigLoader(ctrl)
	loader.EXPECT().Load(h.manifest.Root).Return(h.manifest, nil).AnyTimes()
	resolver := mocks.NewMockInterpreterResolver(ctrl)
	resolver.EXPECT().Resolve(gomock.Any()).Return(python, nil).AnyTimes()
	h.store.EXPECT().Put(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	tracer := telemetry.NewNoOpTracer()
	checker := depcheck.NewChecker(h.prober, tracer, h.logger)
	sup := supervisor.NewSupervisor(h.executor, mocks.NewMockWatcher(ctrl), h.store, tracer, h.logger)
	application := app.New(loader, resolver, checker, sup, h.store, h.logger).
		WithOutput(h.stdout, io.Discard).
		WithDetector(func() detector.OutputMode { return detector.ModePipe })

	h.provider = func(_ context.Context) (*app.Components, func(), error) {
		return &app.Components{
			App:    application,
			Logger: h.logger,
			Tracer: tracer,
		}, func() {}, nil
	}
	return h
}

func (h *harness) run(ctx context.Context, args ...string) int {
	return run(ctx, append(args, "--root", h.manifest.Root), io.Discard, h.provider)
}

// TestRun_Version verifies that the run function returns 0 when the command succeeds.
func TestRun_Version(t *testing.T) {
	h := newHarness(t, false)
	assert.Equal(t, 0, run(context.Background(), []string{"version"}, io.Discard, h.provider))
}

// TestRun_InitializationError verifies that run returns 1 when component initialization fails.
func TestRun_InitializationError(t *testing.T) {
	provider := func(_ context.Context) (*app.Components, func(), error) {
		return nil, nil, errors.New("init failed")
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stderr, provider)

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "Error: init failed")
}

func TestRun_CleanServerExit(t *testing.T) {
	h := newHarness(t, true)
	h.prober.EXPECT().Unresolved(gomock.Any(), h.manifest.Root, python, gomock.Any()).Return(nil, nil)
	h.executor.EXPECT().Run(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(1)

	assert.Equal(t, 0, h.run(context.Background()))
}

func TestRun_MissingDependencies(t *testing.T) {
	h := newHarness(t, true)
	h.prober.EXPECT().Unresolved(gomock.Any(), h.manifest.Root, python, gomock.Any()).Return([]string{"rtmlib"}, nil)

	assert.Equal(t, 1, h.run(context.Background()))
	assert.Contains(t, h.stdout.String(), "pip install rtmlib")
}

func TestRun_ServerFileMissing(t *testing.T) {
	h := newHarness(t, false)
	h.prober.EXPECT().Unresolved(gomock.Any(), h.manifest.Root, python, gomock.Any()).Return(nil, nil)
	h.logger.EXPECT().Error(gomock.Any()).Do(func(err error) {
		assert.ErrorIs(t, err, domain.ErrServerFileNotFound)
	})

	assert.Equal(t, 1, h.run(context.Background()))
}

func TestRun_NonZeroExit(t *testing.T) {
	h := newHarness(t, true)
	h.prober.EXPECT().Unresolved(gomock.Any(), h.manifest.Root, python, gomock.Any()).Return(nil, nil)
	h.executor.EXPECT().Run(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&domain.ServerExitError{Code: 7, Err: errors.New("exit status 7")})
	h.logger.EXPECT().Error(gomock.Any()).Do(func(err error) {
		assert.ErrorIs(t, err, domain.ErrLaunchFailed)
	})

	assert.Equal(t, 1, h.run(context.Background()))
}

// TestRun_InterruptIsCleanExit verifies that an operator stop during the server wait exits 0.
func TestRun_InterruptIsCleanExit(t *testing.T) {
	h := newHarness(t, true)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	h.prober.EXPECT().Unresolved(gomock.Any(), h.manifest.Root, python, gomock.Any()).Return(nil, nil)
	h.executor.EXPECT().Run(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(runCtx context.Context, _ *domain.ServerProcess, _, _ io.Writer) error {
			cancel()
			<-runCtx.Done()
			return errors.New("signal: interrupt")
		})

	assert.Equal(t, 0, h.run(ctx))
	assert.Contains(t, h.stdout.String(), "Server stopped by user")
}
