package domain

import (
	"fmt"
	"strings"

	"go.trai.ch/zerr"
)

var (
	// ErrMissingDependency is the kind of every failed dependency check.
	ErrMissingDependency = zerr.New("missing required packages")

	// ErrServerFileNotFound is returned when the server script does not exist at its computed path.
	ErrServerFileNotFound = zerr.New("server file not found")

	// ErrLaunchFailed is the kind of every spawn or runtime failure of the server process.
	ErrLaunchFailed = zerr.New("server failed to start")

	// ErrInterpreterNotFound is returned when no interpreter candidate can be located.
	// It is reported as an environment problem, distinct from a failing server.
	ErrInterpreterNotFound = zerr.New("interpreter not found")

	// ErrProbeFailed is returned when the interpreter cannot be run to resolve modules.
	ErrProbeFailed = zerr.New("failed to probe interpreter for modules")

	// ErrConfigReadFailed is returned when the manifest file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the manifest file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidConfig is returned when the manifest holds values the launcher cannot use.
	ErrInvalidConfig = zerr.New("invalid configuration")

	// ErrRootNotResolved is returned when the launcher's install directory cannot be determined.
	ErrRootNotResolved = zerr.New("failed to determine launcher directory")

	// ErrJournalReadFailed is returned when a run record cannot be read.
	ErrJournalReadFailed = zerr.New("failed to read run record")

	// ErrJournalWriteFailed is returned when a run record cannot be written.
	ErrJournalWriteFailed = zerr.New("failed to write run record")

	// ErrWatchFailed is returned when the server directory cannot be watched.
	ErrWatchFailed = zerr.New("failed to watch server directory")
)

// MissingDependenciesError lists every requirement the interpreter could not resolve.
// It satisfies errors.Is(err, ErrMissingDependency).
type MissingDependenciesError struct {
	Missing []Requirement
}

func (e *MissingDependenciesError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingDependency.Error(), strings.Join(e.Packages(), ", "))
}

// Is reports whether target is ErrMissingDependency.
func (e *MissingDependenciesError) Is(target error) bool {
	return target == ErrMissingDependency
}

// Packages returns the distribution names of the missing requirements in check order.
func (e *MissingDependenciesError) Packages() []string {
	names := make([]string, 0, len(e.Missing))
	for _, r := range e.Missing {
		names = append(names, r.Package)
	}
	return names
}

// InstallHint returns the command that installs every missing package.
func (e *MissingDependenciesError) InstallHint() string {
	return "pip install " + strings.Join(e.Packages(), " ")
}

// ServerExitError reports a server process that exited with a nonzero status
// or was killed by a signal. It satisfies errors.Is(err, ErrLaunchFailed).
type ServerExitError struct {
	Code int
	// Signal names the signal that killed the process, empty for a normal exit.
	Signal string
	Err    error
}

func (e *ServerExitError) Error() string {
	if e.Signal != "" {
		return "server killed by signal " + e.Signal
	}
	return fmt.Sprintf("server exited with status %d", e.Code)
}

// Unwrap returns the underlying wait error.
func (e *ServerExitError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrLaunchFailed.
func (e *ServerExitError) Is(target error) bool {
	return target == ErrLaunchFailed
}
