package domain

import "path/filepath"

const (
	// StateDirName is the name of the launcher's state directory under the root.
	StateDirName = ".goodgym"

	// RunsDirName holds one run record per server script.
	RunsDirName = "runs"

	// ConfigFileName is the optional manifest file at the launcher root.
	ConfigFileName = "goodgym.yaml"

	// ServerDirName is the directory holding the server next to the launcher.
	ServerDirName = "server"

	// ServerScriptName is the server entry point.
	ServerScriptName = "goodgym_api.py"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultServerScript returns the server script path relative to the launcher root.
func DefaultServerScript() string {
	return filepath.Join(ServerDirName, ServerScriptName)
}

// DefaultRunsPath returns the run journal directory relative to the launcher root.
func DefaultRunsPath() string {
	return filepath.Join(StateDirName, RunsDirName)
}
