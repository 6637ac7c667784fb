// Package ports defines the core interfaces for the application.
package ports

import (
	"context"
	"io"

	"go.goodgym.dev/launcher/internal/core/domain"
)

// Executor defines the interface for running the server process.
//
//go:generate mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Run starts the process and blocks until it exits.
	//
	// When ctx is cancelled the process is interrupted and given proc.StopGrace
	// to exit before it is killed. A nonzero exit status is returned as a
	// *domain.ServerExitError.
	Run(ctx context.Context, proc *domain.ServerProcess, stdout, stderr io.Writer) error
}
