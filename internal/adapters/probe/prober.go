// Package probe asks a Python interpreter which modules it cannot import.
package probe

import (
	"bufio"
	"bytes"
	"context"
	"os/exec"
	"strings"
	"time"

	"go.goodgym.dev/launcher/internal/core/domain"
	"go.goodgym.dev/launcher/internal/core/ports"
	"go.trai.ch/zerr"
)

// MissingPrefix marks a probe output line naming a module that failed to import.
const MissingPrefix = "goodgym-missing:"

// waitDelay bounds how long a killed probe may hold its output pipes open.
const waitDelay = time.Second

// probeScript imports every module named in argv and reports the failures.
// Modules may print on import, so only prefixed lines are significant.
const probeScript = `import sys
for name in sys.argv[1:]:
    try:
        __import__(name)
    except Exception:
        print("` + MissingPrefix + `" + name, flush=True)
`

// Prober implements ports.ModuleProber by running the interpreter once per check.
type Prober struct {
	logger ports.Logger
}

var _ ports.ModuleProber = (*Prober)(nil)

// NewProber creates a new Prober.
func NewProber(logger ports.Logger) *Prober {
	return &Prober{logger: logger}
}

// Unresolved returns the modules the interpreter fails to import when started
// in dir, which becomes the first entry of the interpreter's module path.
func (p *Prober) Unresolved(ctx context.Context, dir, interpreter string, modules []string) ([]string, error) {
	if len(modules) == 0 {
		return nil, nil
	}

	args := append([]string{"-c", probeScript}, modules...)
	cmd := exec.CommandContext(ctx, interpreter, args...) //nolint:gosec // interpreter comes from the manifest
	cmd.Dir = dir
	cmd.WaitDelay = waitDelay

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, zerr.Wrap(ctx.Err(), "probe interrupted")
		}
		err = zerr.Wrap(err, domain.ErrProbeFailed.Error())
		err = zerr.With(err, "interpreter", interpreter)
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			err = zerr.With(err, "stderr", msg)
		}
		return nil, domain.WithKind(domain.WithKind(err, domain.ErrProbeFailed), domain.ErrLaunchFailed)
	}

	var missing []string
	scanner := bufio.NewScanner(&stdout)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if name, ok := strings.CutPrefix(line, MissingPrefix); ok {
			missing = append(missing, name)
			continue
		}
		if line != "" {
			p.logger.Debug("probe: " + line)
		}
	}

	return missing, nil
}
