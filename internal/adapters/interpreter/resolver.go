// Package interpreter locates the Python interpreter that runs the server.
package interpreter

import (
	"os/exec"
	"path/filepath"
	"strings"

	"go.goodgym.dev/launcher/internal/core/domain"
	"go.goodgym.dev/launcher/internal/core/ports"
	"go.trai.ch/zerr"
)

// Resolver implements ports.InterpreterResolver with PATH lookups.
type Resolver struct {
	logger   ports.Logger
	lookPath func(string) (string, error)
}

var _ ports.InterpreterResolver = (*Resolver)(nil)

// NewResolver creates a new Resolver searching the process PATH.
func NewResolver(logger ports.Logger) *Resolver {
	return &Resolver{
		logger:   logger,
		lookPath: exec.LookPath,
	}
}

// Resolve returns the absolute path of the first candidate that is an executable.
// Candidates containing a path separator are used as paths, others are looked up on PATH.
func (r *Resolver) Resolve(candidates []string) (string, error) {
	if len(candidates) == 0 {
		return "", domain.WithKind(
			zerr.Wrap(domain.ErrInterpreterNotFound, "no interpreter candidates configured"),
			domain.ErrLaunchFailed,
		)
	}

	for _, candidate := range candidates {
		path, err := r.lookPath(candidate)
		if err != nil {
			r.logger.Debug("interpreter " + candidate + " not usable: " + err.Error())
			continue
		}

		abs, err := filepath.Abs(path)
		if err != nil {
			continue
		}
		r.logger.Debug("using interpreter " + abs)
		return abs, nil
	}

	err := zerr.Wrap(domain.ErrInterpreterNotFound, "cannot run the server")
	err = zerr.With(err, "candidates", strings.Join(candidates, ", "))
	return "", domain.WithKind(err, domain.ErrLaunchFailed)
}
