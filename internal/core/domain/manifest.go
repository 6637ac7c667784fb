package domain

import (
	"path/filepath"
	"slices"
	"time"
)

const (
	// DefaultHTTPURL is the HTTP endpoint the server listens on.
	DefaultHTTPURL = "http://localhost:8001"

	// DefaultWebSocketURL is the WebSocket endpoint the server listens on.
	DefaultWebSocketURL = "ws://localhost:8001"

	// DefaultStartDelay is the pause between a passing check and the launch.
	DefaultStartDelay = time.Second

	// DefaultStopGrace is how long an interrupted server may take to exit before it is killed.
	DefaultStopGrace = 5 * time.Second
)

// Manifest is the launcher configuration for one server.
type Manifest struct {
	// Root is the launcher's install directory. Every relative path is resolved against it.
	Root string
	// Script is the server script, relative to Root unless absolute.
	Script string
	// Interpreters are tried in order; the first one found runs both the check and the server.
	Interpreters []string
	// Requirements is the ordered dependency registry.
	Requirements []Requirement
	// HTTPURL and WebSocketURL are only advertised to the operator.
	HTTPURL      string
	WebSocketURL string
	StartDelay   time.Duration
	StopGrace    time.Duration
}

// DefaultManifest returns the built-in configuration rooted at root.
func DefaultManifest(root string) *Manifest {
	return &Manifest{
		Root:         root,
		Script:       DefaultServerScript(),
		Interpreters: DefaultInterpreters(),
		Requirements: DefaultRequirements(),
		HTTPURL:      DefaultHTTPURL,
		WebSocketURL: DefaultWebSocketURL,
		StartDelay:   DefaultStartDelay,
		StopGrace:    DefaultStopGrace,
	}
}

// DefaultInterpreters returns the interpreter names looked up on PATH.
func DefaultInterpreters() []string {
	return []string{"python3", "python"}
}

// ScriptPath returns the absolute location of the server script.
func (m *Manifest) ScriptPath() string {
	if filepath.IsAbs(m.Script) {
		return filepath.Clean(m.Script)
	}
	return filepath.Join(m.Root, m.Script)
}

// Clone returns a deep copy of the manifest.
func (m *Manifest) Clone() *Manifest {
	c := *m
	c.Interpreters = slices.Clone(m.Interpreters)
	c.Requirements = slices.Clone(m.Requirements)
	return &c
}

// ServerProcess is the single child process the launcher supervises.
type ServerProcess struct {
	Interpreter string
	Script      string
	Dir         string
	StopGrace   time.Duration
	// Terminal attaches the process to a pseudo-terminal instead of plain pipes.
	Terminal bool
}

// Command returns the argv of the process: the interpreter and the script as its sole argument.
func (p *ServerProcess) Command() []string {
	return []string{p.Interpreter, p.Script}
}
