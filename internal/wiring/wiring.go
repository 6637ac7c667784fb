// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.goodgym.dev/launcher/internal/adapters/config"
	_ "go.goodgym.dev/launcher/internal/adapters/interpreter"
	_ "go.goodgym.dev/launcher/internal/adapters/journal"
	_ "go.goodgym.dev/launcher/internal/adapters/logger"
	_ "go.goodgym.dev/launcher/internal/adapters/probe"
	_ "go.goodgym.dev/launcher/internal/adapters/shell"
	_ "go.goodgym.dev/launcher/internal/adapters/telemetry"
	_ "go.goodgym.dev/launcher/internal/adapters/watcher"
	// Register app and engine nodes.
	_ "go.goodgym.dev/launcher/internal/app"
	_ "go.goodgym.dev/launcher/internal/engine/depcheck"
	_ "go.goodgym.dev/launcher/internal/engine/supervisor"
)
