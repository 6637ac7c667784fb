// Package detector provides environment detection for output mode selection.
package detector

import (
	"os"

	"golang.org/x/term"
)

// OutputMode represents how the server's output is attached to the launcher.
type OutputMode int

const (
	// ModeAuto automatically detects the appropriate mode.
	ModeAuto OutputMode = iota
	// ModeTerminal runs the server in a pseudo-terminal so it keeps colours and line buffering.
	ModeTerminal
	// ModePipe runs the server with plain pipes, as in CI or when output is redirected.
	ModePipe
)

// DetectEnvironment returns the recommended output mode based on the environment.
// It checks if stdout is a TTY and if CI environment variables are set.
func DetectEnvironment() OutputMode {
	isTTY := term.IsTerminal(int(os.Stdout.Fd())) //nolint:gosec // fd fits in int

	ci := os.Getenv("CI")
	isCI := ci == "true" || ci == "1"

	if !isTTY || isCI {
		return ModePipe
	}
	return ModeTerminal
}

// ResolveMode applies the user's --output flag to auto-detection.
// userFlag should be one of: "auto", "pty", "terminal", "pipe", "ci", or empty.
func ResolveMode(autoDetected OutputMode, userFlag string) OutputMode {
	switch userFlag {
	case "pty", "terminal":
		return ModeTerminal
	case "pipe", "ci":
		return ModePipe
	default:
		return autoDetected
	}
}

// IsTerminal reports whether mode attaches the server to a pseudo-terminal.
func (m OutputMode) IsTerminal() bool {
	return m == ModeTerminal
}

func (m OutputMode) String() string {
	switch m {
	case ModeTerminal:
		return "pty"
	case ModePipe:
		return "pipe"
	default:
		return "auto"
	}
}
